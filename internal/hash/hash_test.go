package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	require.NotEqual(t, "pw123", h)

	require.True(t, CheckPassword(h, "pw123"))
	require.False(t, CheckPassword(h, "pw124"))
	require.False(t, CheckPassword("", "pw123"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("pw123")
	require.NoError(t, err)
	h2, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
