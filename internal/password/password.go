package password

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost matches the work factor the stored hashes were produced with.
const hashCost = 12

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
