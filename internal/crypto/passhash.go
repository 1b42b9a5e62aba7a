// Package crypto implements server-side password hashing and refresh secret handling.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
)

// SaltLen is the length of a per-user password salt.
const SaltLen = 16

// dummySalt/dummyHash feed DummyVerify so that paths without a stored user
// cost the same as a real verification.
var (
	dummySalt = []byte("nutrilog-dummy-s")
	dummyHash = HashPassword([]byte("nutrilog-dummy-password"), dummySalt)
)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// HashPassword returns Argon2id hash of password using the provided salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword verifies password against expected Argon2id hash and salt.
func VerifyPassword(password, salt, expected []byte) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// DummyVerify runs one full Argon2id verification against a fixed hash and discards the result.
func DummyVerify(password []byte) {
	_ = VerifyPassword(password, dummySalt, dummyHash)
}
