package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for input longer than bcrypt accepts.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashCost is the bcrypt work factor used for passwords and refresh tokens.
const HashCost = 10

// HashPassword returns a salted bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash value: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash compares plaintext with a stored bcrypt hash.
// A malformed hash is treated as a mismatch.
func CheckPasswordHash(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// tokenDigest reduces a token of any length to 64 hex characters, which
// fits under bcrypt's 72-byte input limit without truncation.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// HashToken returns a bcrypt hash of a long opaque token such as a JWT.
func HashToken(token string) (string, error) {
	return HashPassword(tokenDigest(token))
}

// CheckTokenHash compares token with a hash made by HashToken.
func CheckTokenHash(token, hash string) bool {
	return CheckPasswordHash(tokenDigest(token), hash)
}
