package sharelink_test

import (
	"testing"

	"github.com/serroba/sharelink-go/internal/sharelink"
	"github.com/stretchr/testify/assert"
)

func TestFingerprintOf(t *testing.T) {
	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		a := sharelink.FingerprintOf("203.0.113.7", "Mozilla/5.0", "anon-1")
		b := sharelink.FingerprintOf("203.0.113.7", "Mozilla/5.0", "anon-1")

		assert.Equal(t, a, b)
	})

	t.Run("changes when any component changes", func(t *testing.T) {
		base := sharelink.FingerprintOf("203.0.113.7", "Mozilla/5.0", "anon-1")

		assert.NotEqual(t, base, sharelink.FingerprintOf("203.0.113.8", "Mozilla/5.0", "anon-1"))
		assert.NotEqual(t, base, sharelink.FingerprintOf("203.0.113.7", "curl/8.0", "anon-1"))
		assert.NotEqual(t, base, sharelink.FingerprintOf("203.0.113.7", "Mozilla/5.0", "anon-2"))
	})

	t.Run("does not contain the raw inputs", func(t *testing.T) {
		fp := sharelink.FingerprintOf("203.0.113.7", "Mozilla/5.0", "anon-1")

		assert.NotContains(t, fp, "203.0.113.7")
		assert.NotContains(t, fp, "Mozilla")
		assert.Len(t, fp, 64)
	})

	t.Run("separates components so boundaries cannot collide", func(t *testing.T) {
		a := sharelink.FingerprintOf("ab", "c", "d")
		b := sharelink.FingerprintOf("a", "bc", "d")

		assert.NotEqual(t, a, b)
	})
}
