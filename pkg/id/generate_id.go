package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 generates the external identifier used across the API:
// 32 lowercase hex characters from 16 random bytes.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
