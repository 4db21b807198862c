// Package password hashes and verifies optional link passwords.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Guard hashes link passwords with argon2id and verifies attempts in
// constant time. The cost parameters are fixed and deliberately small so
// a flood of verification attempts stays CPU-bounded; brute-force
// protection comes from the per-code attempt limiter, not from cost.
type Guard struct {
	time    uint32
	memory  uint32 // KiB
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// NewGuard creates a guard with the default cost budget.
func NewGuard() *Guard {
	return &Guard{
		time:    2,
		memory:  19 * 1024,
		threads: 1,
		saltLen: 16,
		keyLen:  32,
	}
}

// Hash derives an encoded argon2id hash with a fresh random salt.
func (g *Guard) Hash(plain string) (string, error) {
	salt := make([]byte, g.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, g.time, g.memory, g.threads, g.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, g.memory, g.time, g.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify checks a password attempt against a stored hash. An empty
// stored hash means the link is public and any attempt succeeds.
func (g *Guard) Verify(plain, encoded string) (bool, error) {
	if encoded == "" {
		return true, nil
	}

	memory, iterations, threads, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	derived := argon2.IDKey([]byte(plain), salt, iterations, memory, threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(derived, key) == 1, nil
}

func decodeHash(encoded string) (memory, iterations uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	if version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	return memory, iterations, threads, salt, key, nil
}
