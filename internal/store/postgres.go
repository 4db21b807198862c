package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/sharelink-go/internal/sharelink"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// Postgres is a PostgreSQL implementation of sharelink.Repository.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL-backed share link store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Insert(ctx context.Context, link *sharelink.ShareLink) error {
	query := `
		INSERT INTO share_links
			(id, short_code, file_id, file_kind, owner_id, password_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		link.ID,
		string(link.Code),
		link.FileRef.FileID,
		string(link.FileRef.Kind),
		link.OwnerID,
		nullableString(link.PasswordHash),
		link.CreatedAt,
		link.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sharelink.ErrCodeTaken
		}

		return err
	}

	return nil
}

const linkColumns = `
	id, short_code, file_id, file_kind, owner_id, password_hash,
	created_at, expires_at, revoked, total_clicks, unique_visitors,
	first_opened_at, last_opened_at
`

func (p *Postgres) GetByCode(ctx context.Context, code sharelink.Code) (*sharelink.ShareLink, error) {
	query := `SELECT ` + linkColumns + ` FROM share_links WHERE short_code = $1`

	link, err := scanLink(p.pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharelink.ErrNotFound
		}

		return nil, err
	}

	return link, nil
}

func (p *Postgres) ListByOwner(ctx context.Context, ownerID string) ([]sharelink.ShareLink, error) {
	query := `SELECT ` + linkColumns + ` FROM share_links WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []sharelink.ShareLink

	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}

		links = append(links, *link)
	}

	return links, rows.Err()
}

// Revoke is idempotent; a link that is already revoked stays revoked.
func (p *Postgres) Revoke(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `UPDATE share_links SET revoked = TRUE WHERE id = $1`, id)

	return err
}

// RecordAccess applies all counter mutations in one statement so that
// concurrent resolutions never lose an update.
func (p *Postgres) RecordAccess(ctx context.Context, id string, newVisitor bool, now time.Time) error {
	visitor := 0
	if newVisitor {
		visitor = 1
	}

	query := `
		UPDATE share_links SET
			total_clicks = total_clicks + 1,
			unique_visitors = unique_visitors + $2,
			first_opened_at = COALESCE(first_opened_at, $3),
			last_opened_at = $3
		WHERE id = $1
	`

	_, err := p.pool.Exec(ctx, query, id, visitor, now)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*sharelink.ShareLink, error) {
	var (
		link         sharelink.ShareLink
		code         string
		kind         string
		passwordHash *string
	)

	err := row.Scan(
		&link.ID,
		&code,
		&link.FileRef.FileID,
		&kind,
		&link.OwnerID,
		&passwordHash,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.Revoked,
		&link.TotalClicks,
		&link.UniqueVisitors,
		&link.FirstOpenedAt,
		&link.LastOpenedAt,
	)
	if err != nil {
		return nil, err
	}

	link.Code = sharelink.Code(code)
	link.FileRef.Kind = sharelink.FileKind(kind)

	if passwordHash != nil {
		link.PasswordHash = *passwordHash
	}

	return &link, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
