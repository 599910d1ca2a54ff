package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dirdr/openstreetlifting-iac/internal/envfile"
)

func writeConfiguredEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, envfile.DefaultPath)
	content := strings.ReplaceAll(testTemplate, envfile.PasswordPlaceholder, "supersecretpassword")
	content = strings.ReplaceAll(content, envfile.APIKeyPlaceholder, "key-one,key-two")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSecrets_MasksByDefault(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeConfiguredEnv(t)

	output := captureOutput(func() {
		require.NoError(t, Secrets(context.Background(), SecretsOptions{EnvPath: path}))
	})

	assert.NotContains(t, output, "supersecretpassword")
	assert.Contains(t, output, "supe")
	assert.Contains(t, output, "masked")
}

func TestSecrets_Reveal(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeConfiguredEnv(t)

	output := captureOutput(func() {
		require.NoError(t, Secrets(context.Background(), SecretsOptions{EnvPath: path, Reveal: true}))
	})

	assert.Contains(t, output, "supersecretpassword")
	assert.Contains(t, output, "key-one")
	assert.Contains(t, output, "key-two")
	assert.NotContains(t, output, "masked")
}

func TestSecrets_JSONOutput(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeConfiguredEnv(t)

	output := captureOutput(func() {
		require.NoError(t, Secrets(context.Background(), SecretsOptions{EnvPath: path, Reveal: true, JSONOutput: true}))
	})

	var entries []secretEntry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))

	categories := map[string]bool{}
	for _, e := range entries {
		categories[e.Category] = true
	}
	assert.True(t, categories["Database"])
	assert.True(t, categories["API"])
}

func TestSecrets_MissingFile(t *testing.T) {
	saveAndRestoreFactories(t)

	err := Secrets(context.Background(), SecretsOptions{EnvPath: filepath.Join(t.TempDir(), ".env")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oslctl setup")
}

func TestMask(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "****", mask("abcd"))
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "abcd********", mask("abcdefghijkl"))
}

func TestHashCredential(t *testing.T) {
	saveAndRestoreFactories(t)
	secretInput = func(context.Context, string, string) (string, error) {
		return "dashboard-password", nil
	}

	output := captureOutput(func() {
		require.NoError(t, HashCredential(context.Background(), "admin"))
	})

	parts := strings.SplitN(strings.TrimSpace(output), ":", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "admin", parts[0])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(parts[1]), []byte("dashboard-password")))
}

func TestHashCredential_EmptyInputs(t *testing.T) {
	saveAndRestoreFactories(t)
	secretInput = func(context.Context, string, string) (string, error) {
		return "", nil
	}

	assert.Error(t, HashCredential(context.Background(), ""))
	assert.Error(t, HashCredential(context.Background(), "admin"))
}
