package commands

import (
	"github.com/spf13/cobra"

	"github.com/dirdr/openstreetlifting-iac/cmd/oslctl/handlers"
)

// Secrets returns the command for displaying configured credentials.
//
// Flags:
//
//	--env: Path to the environment file (default ".env")
//	--reveal: Show unmasked values
//	--json: Output entries as JSON
func Secrets() *cobra.Command {
	var opts handlers.SecretsOptions

	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Show the configured credentials",
		Long: `Show the credentials held by the environment file.

Values are masked by default; pass --reveal to print them in full.
The environment file itself stays the single source of truth, this
command never modifies it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Secrets(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.EnvPath, "env", ".env", "Path to the environment file")
	cmd.Flags().BoolVar(&opts.Reveal, "reveal", false, "Show unmasked values")
	cmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "Output entries as JSON")

	cmd.AddCommand(secretsHash())

	return cmd
}

// secretsHash returns the subcommand producing an htpasswd bcrypt entry
// for the reverse proxy dashboard.
func secretsHash() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Generate an htpasswd entry for the proxy dashboard",
		Long: `Generate an htpasswd-style bcrypt entry.

Prompts for a password and prints a user:hash line suitable for the
reverse proxy dashboard's basic-auth middleware.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.HashCredential(cmd.Context(), user)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "admin", "Dashboard user name")

	return cmd
}
