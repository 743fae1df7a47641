// Package crypto implements server-side password hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of password at the default cost.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// VerifyPassword verifies password against a stored bcrypt hash.
func VerifyPassword(password, expected []byte) bool {
	return bcrypt.CompareHashAndPassword(expected, password) == nil
}
