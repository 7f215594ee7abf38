package bcryptutil

import (
	"golang.org/x/crypto/bcrypt"
)

// GenerateHash returns the bcrypt hash of the given password.
func GenerateHash(s string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareHash compares a plain text password with a stored bcrypt hash.
// Returns true if they match.
func CompareHash(s string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(s))
	return err == nil
}
