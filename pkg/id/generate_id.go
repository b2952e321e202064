// Package id generates the public identifiers for collaterals, loans,
// payments, auctions and bids. The format doubles as the actor id format the
// identity headers carry.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 lowercase hex characters (no separators or
// prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
