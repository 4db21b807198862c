package sharelink_test

import (
	"testing"

	"github.com/serroba/sharelink-go/internal/sharelink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeGenerator(t *testing.T) {
	t.Run("generates codes of the configured length", func(t *testing.T) {
		generate, err := sharelink.NewCodeGenerator(8)

		require.NoError(t, err)
		assert.Len(t, string(generate()), 8)
	})

	t.Run("generates base62 codes only", func(t *testing.T) {
		generate, err := sharelink.NewCodeGenerator(8)
		require.NoError(t, err)

		for range 100 {
			for _, r := range string(generate()) {
				isDigit := r >= '0' && r <= '9'
				isUpper := r >= 'A' && r <= 'Z'
				isLower := r >= 'a' && r <= 'z'
				assert.True(t, isDigit || isUpper || isLower, "unexpected character %q", r)
			}
		}
	})

	t.Run("produces no duplicates across ten thousand codes", func(t *testing.T) {
		generate, err := sharelink.NewCodeGenerator(8)
		require.NoError(t, err)

		seen := make(map[sharelink.Code]struct{}, 10_000)

		for range 10_000 {
			code := generate()
			_, dup := seen[code]

			require.False(t, dup, "duplicate code %s", code)

			seen[code] = struct{}{}
		}
	})

	t.Run("rejects invalid lengths", func(t *testing.T) {
		_, err := sharelink.NewCodeGenerator(0)

		assert.Error(t, err)
	})
}
