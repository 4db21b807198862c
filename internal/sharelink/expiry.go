package sharelink

import "time"

// DefaultMaxTTL caps owner-chosen link lifetimes. Abuse control; the UI
// offers a much shorter menu but the service accepts any positive
// duration up to this limit.
const DefaultMaxTTL = 30 * 24 * time.Hour

// ExpiryPolicy validates owner-chosen TTLs and decides link validity
// over time.
type ExpiryPolicy struct {
	MaxTTL time.Duration
}

// NewExpiryPolicy creates an expiry policy with the given cap.
// A non-positive cap falls back to DefaultMaxTTL.
func NewExpiryPolicy(maxTTL time.Duration) ExpiryPolicy {
	if maxTTL <= 0 {
		maxTTL = DefaultMaxTTL
	}

	return ExpiryPolicy{MaxTTL: maxTTL}
}

// ValidateTTL converts a TTL in minutes to a duration, rejecting
// non-positive values and values beyond the cap.
func (p ExpiryPolicy) ValidateTTL(minutes int) (time.Duration, error) {
	if minutes <= 0 {
		return 0, ErrInvalidExpiry
	}

	ttl := time.Duration(minutes) * time.Minute
	if ttl > p.MaxTTL {
		return 0, ErrInvalidExpiry
	}

	return ttl, nil
}

// IsResolvable reports whether the link is still valid at the given time.
func (p ExpiryPolicy) IsResolvable(link *ShareLink, now time.Time) bool {
	return link.Resolvable(now)
}
