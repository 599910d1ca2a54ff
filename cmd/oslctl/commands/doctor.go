package commands

import (
	"github.com/spf13/cobra"

	"github.com/dirdr/openstreetlifting-iac/cmd/oslctl/handlers"
)

// Doctor returns the command for diagnosing the deployment.
//
// This command inspects the host without changing anything: tool
// availability, the shared network, the environment file, and DNS for
// the configured domain.
//
// Flags:
//
//	--file, -f: Path to the compose file (default "docker-compose.yml")
//	--env: Path to the environment file (default ".env")
//	--json: Output status as JSON
func Doctor() *cobra.Command {
	var opts handlers.DoctorOptions

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the deployment",
		Long: `Diagnose the deployment.

Checks the host prerequisites, the shared network, the environment
file and DNS resolution for the configured domain, and reports what
is missing. Nothing is modified; use 'oslctl setup' to fix findings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ComposeFile, "file", "f", "docker-compose.yml", "Path to the compose file")
	cmd.Flags().StringVar(&opts.EnvPath, "env", ".env", "Path to the environment file")
	cmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "Output status as JSON")

	return cmd
}
