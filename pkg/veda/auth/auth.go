package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the password in the form the platform expects on authentication,
// the lower case hex encoded sha256 of the plain text.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
