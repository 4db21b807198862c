package sharelink

import "time"

// Code represents a public short code identifying a share link.
type Code string

// FileKind distinguishes where the shared file lives.
type FileKind string

const (
	// FileKindTemporary refers to files in the short-lived upload area.
	FileKindTemporary FileKind = "temporary"
	// FileKindLibrary refers to files in the user's permanent library.
	FileKindLibrary FileKind = "library"
)

// FileRef points at externally stored content. The link never duplicates
// the bytes themselves.
type FileRef struct {
	FileID string
	Kind   FileKind
}

// FileMeta is the metadata the file collaborator reports for a FileRef.
type FileMeta struct {
	Name string
	Size int64
}

// ShareLink represents a time-limited public link to a stored file.
type ShareLink struct {
	ID           string
	Code         Code
	FileRef      FileRef
	OwnerID      string
	PasswordHash string // empty when the link is public
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Revoked      bool

	TotalClicks    int64
	UniqueVisitors int64
	FirstOpenedAt  *time.Time
	LastOpenedAt   *time.Time
}

// PasswordProtected reports whether a password was set at creation.
func (l *ShareLink) PasswordProtected() bool {
	return l.PasswordHash != ""
}

// Resolvable reports whether the link can still be resolved at the given
// time. Revocation and expiry are both terminal.
func (l *ShareLink) Resolvable(now time.Time) bool {
	return !l.Revoked && now.Before(l.ExpiresAt)
}
