package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Stretch hashes input with SHA-256, then re-hashes the raw 32-byte digest
// rounds additional times, and returns the final digest as 64 lowercase hex
// characters. rounds = 0 yields the plain single hash. The iteration is a
// work factor: it makes brute-forcing a label derived from low-entropy
// personal fields expensive.
//
// Stretch is a pure function. Empty input is valid and hashes the empty
// byte sequence.
func Stretch(input string, rounds int) string {
	sum := sha256.Sum256([]byte(input))
	for i := 0; i < rounds; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return hex.EncodeToString(sum[:])
}
