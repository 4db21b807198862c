package sharelink_test

import (
	"testing"
	"time"

	"github.com/serroba/sharelink-go/internal/sharelink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryPolicy_ValidateTTL(t *testing.T) {
	policy := sharelink.NewExpiryPolicy(0)

	t.Run("accepts a positive ttl within the cap", func(t *testing.T) {
		ttl, err := policy.ValidateTTL(60)

		require.NoError(t, err)
		assert.Equal(t, time.Hour, ttl)
	})

	t.Run("accepts the cap exactly", func(t *testing.T) {
		ttl, err := policy.ValidateTTL(30 * 24 * 60)

		require.NoError(t, err)
		assert.Equal(t, sharelink.DefaultMaxTTL, ttl)
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := policy.ValidateTTL(0)

		assert.ErrorIs(t, err, sharelink.ErrInvalidExpiry)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := policy.ValidateTTL(-10)

		assert.ErrorIs(t, err, sharelink.ErrInvalidExpiry)
	})

	t.Run("rejects values beyond the cap", func(t *testing.T) {
		_, err := policy.ValidateTTL(30*24*60 + 1)

		assert.ErrorIs(t, err, sharelink.ErrInvalidExpiry)
	})

	t.Run("a custom cap overrides the default", func(t *testing.T) {
		short := sharelink.NewExpiryPolicy(time.Hour)

		_, err := short.ValidateTTL(61)
		assert.ErrorIs(t, err, sharelink.ErrInvalidExpiry)

		_, err = short.ValidateTTL(60)
		assert.NoError(t, err)
	})
}

func TestExpiryPolicy_IsResolvable(t *testing.T) {
	policy := sharelink.NewExpiryPolicy(0)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	link := func() *sharelink.ShareLink {
		return &sharelink.ShareLink{
			Code:      "abc12345",
			CreatedAt: now.Add(-time.Hour),
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("a live link resolves", func(t *testing.T) {
		assert.True(t, policy.IsResolvable(link(), now))
	})

	t.Run("an expired link does not resolve", func(t *testing.T) {
		assert.False(t, policy.IsResolvable(link(), now.Add(2*time.Hour)))
	})

	t.Run("a link expiring this instant does not resolve", func(t *testing.T) {
		assert.False(t, policy.IsResolvable(link(), now.Add(time.Hour)))
	})

	t.Run("a revoked link does not resolve", func(t *testing.T) {
		l := link()
		l.Revoked = true

		assert.False(t, policy.IsResolvable(l, now))
	})
}
