package analytics

import "time"

// Topic names for share link analytics events.
const (
	TopicLinkCreated  = "link.created"
	TopicLinkAccessed = "link.accessed"
)

// LinkCreatedEvent is emitted when an owner issues a new share link.
type LinkCreatedEvent struct {
	Code              string    `json:"code"`
	OwnerID           string    `json:"ownerId"`
	FileID            string    `json:"fileId"`
	FileKind          string    `json:"fileKind"`
	PasswordProtected bool      `json:"passwordProtected"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

// LinkAccessedEvent is emitted on every successful resolution. Only the
// one-way visitor fingerprint travels with the event; raw client address
// and user agent are never published or persisted.
type LinkAccessedEvent struct {
	Code        string    `json:"code"`
	Fingerprint string    `json:"fingerprint"`
	NewVisitor  bool      `json:"newVisitor"`
	AccessedAt  time.Time `json:"accessedAt"`
}
