package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pquerna/otp"
)

// OTPDigits is the length of the one-time codes mailed to users.
const OTPDigits = otp.DigitsSix

// GenerateNumericCode draws a uniformly random value in [0, 10^digits) and
// returns it zero-padded to the full width, so "000042" is as likely as any
// other code.
func GenerateNumericCode(digits otp.Digits) (string, error) {
	n := digits.Length()
	if n <= 0 || n > 9 {
		return "", fmt.Errorf("cryptox: unsupported code length %d", n)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to draw code: %w", err)
	}

	return digits.Format(int32(v.Int64())), nil
}

// IsNumericCode reports whether s is exactly digits ASCII digits long.
func IsNumericCode(s string, digits otp.Digits) bool {
	if len(s) != digits.Length() {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
