package commands

import (
	"github.com/spf13/cobra"

	"github.com/dirdr/openstreetlifting-iac/cmd/oslctl/handlers"
)

// Setup returns the command for interactively provisioning the deployment.
//
// This command walks the operator through the complete provisioning
// procedure: prerequisite checks, shared network creation, environment
// file materialization with secret generation, optional DNS
// verification, and the deployment handoff.
//
// Flags:
//
//	--file, -f: Path to the compose file (default "docker-compose.yml")
//	--env: Path to the environment file (default ".env")
//	--template: Path to the environment template (default ".env.example")
func Setup() *cobra.Command {
	var opts handlers.SetupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively provision the deployment environment",
		Long: `Interactively provision the deployment environment.

This command prepares everything the compose stack needs to run:

  - Verifies the container engine and compose CLI are installed
  - Ensures the shared reverse proxy network exists
  - Creates the environment file from its template
  - Generates or accepts the database password and API key
  - Optionally verifies that the configured domain resolves
  - Pulls the images and starts all services

Re-running setup is safe: an existing environment file is kept
unless you explicitly choose to reconfigure it, and the shared
network is only created when absent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Setup(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ComposeFile, "file", "f", "docker-compose.yml", "Path to the compose file")
	cmd.Flags().StringVar(&opts.EnvPath, "env", ".env", "Path to the environment file")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", ".env.example", "Path to the environment template")

	return cmd
}
