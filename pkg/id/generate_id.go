package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes). Public
// identifiers (users, assets, loans, scores, investments) all use this shape.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewToken returns a UUIDv4 string. Collateral tokens are UUIDs so they are
// visually distinct from entity ids in logs and API payloads.
func NewToken() string {
	return uuid.NewString()
}
