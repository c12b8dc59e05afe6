package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex SHA-256 of the UTF-8 bytes of content.
// It is a dedup key, not an integrity check.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
