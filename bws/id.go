package bws

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// genID returns a short connection identifier for diagnostics.
func genID() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	// Fallback to timestamp-based ID if rand fails (unlikely)
	t := time.Now().UnixNano()
	var fb [6]byte
	for i := range fb {
		fb[i] = byte(t >> (uint(i) * 8))
	}
	return hex.EncodeToString(fb[:])
}
