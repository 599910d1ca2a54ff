package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor(t *testing.T) {
	cmd := Doctor()

	require.NotNil(t, cmd)
	assert.Equal(t, "doctor", cmd.Use)
	assert.Equal(t, "Diagnose the deployment", cmd.Short)
	assert.Contains(t, cmd.Long, "Nothing is modified")
	assert.NotNil(t, cmd.RunE)
}

func TestDoctor_JSONFlag(t *testing.T) {
	cmd := Doctor()

	flag := cmd.Flags().Lookup("json")
	require.NotNil(t, flag, "json flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestDoctor_FileFlags(t *testing.T) {
	cmd := Doctor()

	fileFlag := cmd.Flags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "docker-compose.yml", fileFlag.DefValue)

	envFlag := cmd.Flags().Lookup("env")
	require.NotNil(t, envFlag)
	assert.Equal(t, ".env", envFlag.DefValue)
}
