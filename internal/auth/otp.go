package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPLength is the number of digits in a password-reset code.
const OTPLength = 6

// GenerateOTP returns a uniformly random 6-digit numeric code,
// zero-padded so "004217" is a valid code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
