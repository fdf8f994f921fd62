package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Purpose
		wantErr bool
	}{
		{"", domain.PurposeSignin, false},
		{"signin", domain.PurposeSignin, false},
		{"signup", domain.PurposeSignup, false},
		{"SIGNUP", "", true},
		{"login", "", true},
	}

	for _, tt := range tests {
		got, err := domain.ParsePurpose(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestCredentialLiveAt(t *testing.T) {
	exp := time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC)
	c := domain.Credential{ExpiresAt: exp}

	require.True(t, c.LiveAt(exp.Add(-time.Nanosecond)))
	require.False(t, c.LiveAt(exp))
	require.False(t, c.LiveAt(exp.Add(time.Second)))
}
