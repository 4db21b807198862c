package sharelink

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintOf derives a one-way visitor fingerprint from the client
// network address, user agent and optional anonymous cookie. Only this
// hash is ever stored or compared; the raw values are never persisted.
func FingerprintOf(clientIP, userAgent, anonID string) string {
	hash := sha256.Sum256([]byte(clientIP + "|" + userAgent + "|" + anonID))

	return hex.EncodeToString(hash[:])
}
