package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	secret := []byte("a very secret value")

	k1, err := DeriveKey(secret, "session-1")
	require.NoError(t, err)
	require.Len(t, k1, DerivedKeySize)

	again, err := DeriveKey(secret, "session-1")
	require.NoError(t, err)
	require.Equal(t, k1, again)

	k2, err := DeriveKey(secret, "session-2")
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)

	_, err = DeriveKey(nil, "session-1")
	require.Error(t, err)
}
