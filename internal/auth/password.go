package auth

import (
	"golang.org/x/crypto/bcrypt"

	"unifit_backend/pkg/apperrors"
)

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 8

// HashPassword returns a salted bcrypt hash of the password. Two calls
// with the same input produce different hashes.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. A corrupt or
// foreign-format hash yields false, never an error or panic.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.ErrWeakPassword
	}
	return nil
}
