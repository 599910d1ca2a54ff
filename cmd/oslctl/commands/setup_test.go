package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	cmd := Setup()

	require.NotNil(t, cmd)
	assert.Equal(t, "setup", cmd.Use)
	assert.Equal(t, "Interactively provision the deployment environment", cmd.Short)
	assert.Contains(t, cmd.Long, "Re-running setup is safe")
	assert.NotNil(t, cmd.RunE, "setup command should have RunE function")
}

func TestSetup_FileFlag(t *testing.T) {
	cmd := Setup()

	flag := cmd.Flags().Lookup("file")
	require.NotNil(t, flag, "file flag should exist")
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, "docker-compose.yml", flag.DefValue)
}

func TestSetup_EnvFlags(t *testing.T) {
	cmd := Setup()

	envFlag := cmd.Flags().Lookup("env")
	require.NotNil(t, envFlag, "env flag should exist")
	assert.Equal(t, ".env", envFlag.DefValue)

	templateFlag := cmd.Flags().Lookup("template")
	require.NotNil(t, templateFlag, "template flag should exist")
	assert.Equal(t, ".env.example", templateFlag.DefValue)
}
