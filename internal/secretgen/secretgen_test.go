package secretgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_Length(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		password, err := Password()
		require.NoError(t, err)
		assert.Len(t, password, PasswordLength)
	}
}

func TestPassword_RestrictedAlphabet(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		password, err := Password()
		require.NoError(t, err)

		assert.NotContains(t, password, "=")
		assert.NotContains(t, password, "+")
		assert.NotContains(t, password, "/")
	}
}

func TestPassword_Uniqueness(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := Password()
		require.NoError(t, err)
		assert.False(t, seen[password], "generated password repeated")
		seen[password] = true
	}
}

func TestAPIKey_HexFormat(t *testing.T) {
	t.Parallel()
	key, err := APIKey()
	require.NoError(t, err)

	assert.Len(t, key, 2*APIKeyBytes)
	for _, c := range key {
		assert.True(t, strings.ContainsRune("0123456789abcdef", c),
			"unexpected character %q in API key", c)
	}
}

func TestAPIKey_Uniqueness(t *testing.T) {
	t.Parallel()
	first, err := APIKey()
	require.NoError(t, err)
	second, err := APIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
