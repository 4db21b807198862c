package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/sharelink-go/internal/analytics"
)

// PostgresAnalytics persists analytics events consumed from the message
// stream. Event rows carry the one-way fingerprint only, never raw
// client data.
type PostgresAnalytics struct {
	pool *pgxpool.Pool
}

// NewPostgresAnalytics creates a new PostgreSQL-backed analytics store.
func NewPostgresAnalytics(pool *pgxpool.Pool) *PostgresAnalytics {
	return &PostgresAnalytics{pool: pool}
}

func (p *PostgresAnalytics) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	query := `
		INSERT INTO link_created_events
			(code, owner_id, file_id, file_kind, password_protected, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.OwnerID,
		event.FileID,
		event.FileKind,
		event.PasswordProtected,
		event.CreatedAt,
		event.ExpiresAt,
	)

	return err
}

func (p *PostgresAnalytics) SaveLinkAccessed(ctx context.Context, event *analytics.LinkAccessedEvent) error {
	query := `
		INSERT INTO link_access_events (code, fingerprint, new_visitor, accessed_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.Fingerprint,
		event.NewVisitor,
		event.AccessedAt,
	)

	return err
}
