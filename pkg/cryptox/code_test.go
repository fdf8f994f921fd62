package cryptox

import (
	"testing"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	for range 500 {
		code, err := GenerateNumericCode(OTPDigits)
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.True(t, IsNumericCode(code, OTPDigits), "code %q", code)
	}
}

func TestGenerateNumericCode_CoversLeadingDigits(t *testing.T) {
	// Each leading digit should show up in a few thousand draws; a missing
	// zero would mean codes are not zero-padded.
	leading := make(map[byte]bool)
	for range 5000 {
		code, err := GenerateNumericCode(OTPDigits)
		require.NoError(t, err)
		leading[code[0]] = true
	}
	require.Len(t, leading, 10)
}

func TestGenerateNumericCode_Eight(t *testing.T) {
	code, err := GenerateNumericCode(otp.DigitsEight)
	require.NoError(t, err)
	require.Len(t, code, 8)
}

func TestIsNumericCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"000000", true},
		{"123456", true},
		{"12345", false},
		{"1234567", false},
		{"12a456", false},
		{"", false},
		{" 12345", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsNumericCode(tt.in, OTPDigits), "input %q", tt.in)
	}
}
