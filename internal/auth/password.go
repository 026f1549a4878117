package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost pins the work factor rather than tracking the library default.
const bcryptCost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of the plaintext password, suitable
// for storing on the user document.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
