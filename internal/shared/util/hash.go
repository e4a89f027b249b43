package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the hex sha256 of an upload, used to correlate log
// lines for the same file without keeping its bytes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
