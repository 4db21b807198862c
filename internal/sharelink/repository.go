package sharelink

import (
	"context"
	"time"
)

// Repository defines the durable storage operations for share links.
type Repository interface {
	// Insert persists a new link. Returns ErrCodeTaken when the short
	// code is already claimed, so callers can regenerate and retry.
	Insert(ctx context.Context, link *ShareLink) error

	// GetByCode retrieves a link by its public short code.
	// Returns ErrNotFound when no link has that code.
	GetByCode(ctx context.Context, code Code) (*ShareLink, error)

	// ListByOwner returns every link the owner created, including
	// expired and revoked ones, with full counters.
	ListByOwner(ctx context.Context, ownerID string) ([]ShareLink, error)

	// Revoke marks a link revoked. Idempotent; revocation is permanent.
	Revoke(ctx context.Context, id string) error

	// RecordAccess applies the counter mutations for one successful
	// resolution as a single atomic update: totalClicks always
	// increments, uniqueVisitors increments only when newVisitor is
	// true, firstOpenedAt is set once and lastOpenedAt always updates.
	RecordAccess(ctx context.Context, id string, newVisitor bool, now time.Time) error
}

// VisitRegistry deduplicates anonymous visitors per link within a
// rolling window. Implementations never persist anything beyond the
// one-way fingerprint.
type VisitRegistry interface {
	// Register marks the fingerprint as seen for the code and reports
	// whether it was new within the current dedup window.
	Register(ctx context.Context, code Code, fingerprint string) (newVisitor bool, err error)
}

// MetadataFetcher resolves a file reference to its metadata. Implemented
// by the object storage collaborator.
type MetadataFetcher interface {
	FetchMeta(ctx context.Context, ref FileRef) (FileMeta, error)
}

// DownloadURLIssuer mints short-lived signed download URLs scoped to a
// single object. Stateless; the URL's validity is independent of the
// link's own expiry.
type DownloadURLIssuer interface {
	PresignDownload(ctx context.Context, ref FileRef) (string, error)
}
