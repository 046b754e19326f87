package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives the per-user prefix under which uploaded page
// images are stored. Hashing keeps user IDs out of object keys and
// public /uploads URLs while staying stable across uploads.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
