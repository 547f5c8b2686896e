package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// FunctionHash hashes canonical source bytes directly: no domain prefix, no
// length prefix, nothing besides the bytes the data model names as the hash
// preimage.
func FunctionHash(canonicalCode []byte) string {
	sum := sha256.Sum256(canonicalCode)
	return hex.EncodeToString(sum[:])
}

// OverlayHash hashes canonical JSON bytes directly, for the same reason.
func OverlayHash(canonicalJSON []byte) string {
	sum := sha256.Sum256(canonicalJSON)
	return hex.EncodeToString(sum[:])
}
