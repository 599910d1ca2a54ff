package commands

import (
	"github.com/spf13/cobra"

	"github.com/dirdr/openstreetlifting-iac/cmd/oslctl/handlers"
)

// Status returns the command for showing service status.
//
// Flags:
//
//	--file, -f: Path to the compose file (default "docker-compose.yml")
//	--watch, -w: Continuously refresh the listing
func Status() *cobra.Command {
	var opts handlers.StatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the deployed services",
		Long: `Show the state of the deployed services.

Renders the compose service listing once. With --watch the listing
refreshes continuously; press q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ComposeFile, "file", "f", "docker-compose.yml", "Path to the compose file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Continuously refresh the listing")

	return cmd
}
