package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "oslctl", cmd.Use)
	assert.Equal(t, "Provision and operate the OpenStreetLifting deployment", cmd.Short)
}

func TestRoot_HasAllSubcommands(t *testing.T) {
	cmd := Root()

	expected := []string{"setup", "doctor", "status", "secrets", "version", "completion"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}
