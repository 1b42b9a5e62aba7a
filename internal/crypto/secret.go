package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// RandHex returns n random bytes rendered as lowercase hex (2n characters).
func RandHex(n int) (string, error) {
	b, err := RandBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns hex(SHA-256(secret)). Refresh secrets are stored only in this form.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
