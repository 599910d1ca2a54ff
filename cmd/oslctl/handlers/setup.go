// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dirdr/openstreetlifting-iac/internal/compose"
	"github.com/dirdr/openstreetlifting-iac/internal/dnscheck"
	"github.com/dirdr/openstreetlifting-iac/internal/envfile"
	"github.com/dirdr/openstreetlifting-iac/internal/prereq"
	"github.com/dirdr/openstreetlifting-iac/internal/prompt"
	"github.com/dirdr/openstreetlifting-iac/internal/runner"
	"github.com/dirdr/openstreetlifting-iac/internal/secretgen"
	"github.com/dirdr/openstreetlifting-iac/internal/ui"
)

// settleDelay is the fixed wait between starting the services and
// querying their status. It lets the status output stabilize; it is not
// a readiness check.
const settleDelay = 10 * time.Second

// composeClient is the subset of compose.Client the handlers use.
type composeClient interface {
	NetworkExists(ctx context.Context, name string) (bool, error)
	CreateNetwork(ctx context.Context, name string) error
	Pull(ctx context.Context) error
	Up(ctx context.Context) error
	PS(ctx context.Context) (string, error)
	Services() ([]compose.Service, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newRunner creates the command executor.
	newRunner = func() runner.Runner {
		return runner.NewExecRunner()
	}

	// newComposeClient creates the compose client.
	newComposeClient = func(run runner.Runner, form prereq.ComposeCommand, file string) composeClient {
		return compose.NewClient(run, form, file)
	}

	// checkDefaultPrereqs runs required tool checks.
	checkDefaultPrereqs = prereq.CheckDefault

	// resolveComposeForm picks the compose invocation form once.
	resolveComposeForm = prereq.ResolveCompose

	// Operator decision points.
	confirm     = prompt.Confirm
	secretInput = prompt.SecretInput

	// Secret generation.
	generatePassword = secretgen.Password
	generateAPIKey   = secretgen.APIKey

	// Environment file operations.
	envExists      = envfile.Exists
	materializeEnv = envfile.Materialize
	substituteEnv  = envfile.Substitute
	loadEnv        = envfile.Load

	// resolveDomain performs the optional DNS verification.
	resolveDomain = dnscheck.Resolve

	// settle waits for the settling delay (instant in tests).
	settle = time.Sleep
)

// SetupOptions configures the setup handler.
type SetupOptions struct {
	// ComposeFile is the compose file describing the stack.
	ComposeFile string

	// EnvPath is the target environment file.
	EnvPath string

	// TemplatePath is the template the environment file is created from.
	TemplatePath string
}

// setupState tracks the decisions made during one provisioning run.
//
// The procedure is strictly sequential; this record replaces ambient
// flags so each step's outcome is explicit.
type setupState struct {
	composeForm prereq.ComposeCommand
	reusedEnv   bool
}

// Setup runs the interactive environment provisioner.
//
// The procedure validates host prerequisites, ensures the shared proxy
// network exists, materializes the environment file from its template,
// and hands off to the compose CLI to start the stack. It is safe to
// re-run: an existing environment file is only touched if the operator
// opts in, and the network is only created if absent.
func Setup(ctx context.Context, opts SetupOptions) error {
	if opts.EnvPath == "" {
		opts.EnvPath = envfile.DefaultPath
	}
	if opts.TemplatePath == "" {
		opts.TemplatePath = envfile.TemplatePath
	}

	printSetupWelcome()

	run := newRunner()
	state := &setupState{}

	// Hard prerequisites: container engine, compose CLI.
	if err := checkSetupPrerequisites(ctx, run, state); err != nil {
		return err
	}

	client := newComposeClient(run, state.composeForm, opts.ComposeFile)

	if err := ensureNetwork(ctx, client); err != nil {
		return err
	}

	if err := materializeEnvironment(ctx, opts, state); err != nil {
		return err
	}

	verifyDomain(ctx, opts.EnvPath)

	printSecurityChecklist()

	proceed, err := confirm(ctx, "Start the deployment?",
		"Pulls the referenced images and starts all services in the background.", true)
	if err != nil {
		return fmt.Errorf("deployment confirmation: %w", err)
	}
	if !proceed {
		fmt.Println("Aborted. Nothing was pulled or started.")
		return nil
	}

	return deploy(ctx, client)
}

// checkSetupPrerequisites verifies the engine is present and resolves
// the compose invocation form.
func checkSetupPrerequisites(ctx context.Context, run runner.Runner, state *setupState) error {
	results := checkDefaultPrereqs(run)
	for _, result := range results.Results {
		fmt.Print(ui.Row(result.Tool.Name, result.Found, result.Path))
	}
	if results.HasErrors() {
		return results.Error()
	}

	form, err := resolveComposeForm(ctx, run)
	if err != nil {
		fmt.Print(ui.Row("compose", false, ""))
		return err
	}
	state.composeForm = form
	fmt.Print(ui.Row("compose", true, form.String()))
	fmt.Println()

	return nil
}

// ensureNetwork checks the shared proxy network and offers to create it.
func ensureNetwork(ctx context.Context, client composeClient) error {
	exists, err := client.NetworkExists(ctx, compose.NetworkName)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("Network %q already exists", compose.NetworkName)
		return nil
	}

	create, err := confirm(ctx, fmt.Sprintf("Create the shared %q network?", compose.NetworkName),
		"The reverse proxy and the services communicate over this network. The deployment cannot start without it.", true)
	if err != nil {
		return fmt.Errorf("network prompt: %w", err)
	}
	if !create {
		return fmt.Errorf("%w: network %q is required", prereq.ErrMissingPrerequisite, compose.NetworkName)
	}

	if err := client.CreateNetwork(ctx, compose.NetworkName); err != nil {
		return err
	}
	log.Printf("Created network %q", compose.NetworkName)
	return nil
}

// materializeEnvironment creates the environment file from its template
// and fills in the secret values.
//
// If the file already exists the operator chooses between reconfiguring
// and keeping it; keeping it leaves the file byte-identical.
func materializeEnvironment(ctx context.Context, opts SetupOptions, state *setupState) error {
	if envExists(opts.EnvPath) {
		reconfigure, err := confirm(ctx, fmt.Sprintf("%s already exists. Reconfigure it?", opts.EnvPath),
			"Reconfiguring overwrites the file and generates new secrets. Existing deployments keep their database volume, so a changed password will not match the database.", false)
		if err != nil {
			return fmt.Errorf("reconfigure prompt: %w", err)
		}
		if !reconfigure {
			state.reusedEnv = true
			log.Printf("Keeping existing %s", opts.EnvPath)
			return nil
		}
	}

	if err := materializeEnv(opts.TemplatePath, opts.EnvPath); err != nil {
		return err
	}

	password, err := askSecret(ctx, "Database password",
		"Leave empty to generate a strong random password.", generatePassword)
	if err != nil {
		return err
	}
	if err := substituteEnv(opts.EnvPath, envfile.PasswordPlaceholder, password); err != nil {
		return err
	}

	apiKey, err := askSecret(ctx, "API key",
		"Leave empty to generate a random 64-character key.", generateAPIKey)
	if err != nil {
		return err
	}
	if err := substituteEnv(opts.EnvPath, envfile.APIKeyPlaceholder, apiKey); err != nil {
		return err
	}

	log.Printf("Wrote %s", opts.EnvPath)
	return nil
}

// askSecret prompts for a secret value, generating one when the
// operator leaves the input empty.
func askSecret(ctx context.Context, title, description string, generate func() (string, error)) (string, error) {
	value, err := secretInput(ctx, title, description)
	if err != nil {
		return "", fmt.Errorf("%s prompt: %w", title, err)
	}
	if value != "" {
		return value, nil
	}

	generated, err := generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", title, err)
	}
	fmt.Printf("Generated a random %s.\n", title)
	return generated, nil
}

// verifyDomain optionally resolves the configured domain. Failures are
// reported and execution continues.
func verifyDomain(ctx context.Context, envPath string) {
	settings, err := loadEnv(envPath)
	if err != nil || settings.Domain == "" {
		return
	}

	check, err := confirm(ctx, fmt.Sprintf("Verify DNS for %s?", settings.Domain),
		"Checks that the domain resolves. Certificate issuance needs working DNS.", true)
	if err != nil || !check {
		return
	}

	result := resolveDomain(ctx, settings.Domain)
	if result.OK() {
		fmt.Print(ui.Row("DNS", true, fmt.Sprintf("%s → %v", result.Domain, result.Addresses)))
		return
	}
	fmt.Print(ui.WarnRow("DNS", fmt.Sprintf("%s did not resolve, certificate issuance will fail until it does", result.Domain)))
}

// deploy pulls the images, starts the stack and shows its status after
// the settling delay. Orchestrator failures propagate unmodified.
func deploy(ctx context.Context, client composeClient) error {
	log.Printf("Pulling images...")
	if err := client.Pull(ctx); err != nil {
		return err
	}

	log.Printf("Starting services...")
	if err := client.Up(ctx); err != nil {
		return err
	}

	log.Printf("Waiting %s for services to settle...", settleDelay)
	settle(settleDelay)

	listing, err := client.PS(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(ui.Section("Services"))
	fmt.Println(listing)
	printSetupSuccess()
	return nil
}

func printSetupWelcome() {
	fmt.Println()
	fmt.Print(ui.Header("OpenStreetLifting deployment setup"))
	fmt.Println()
	fmt.Println("  This wizard prepares the environment file and starts the stack.")
	fmt.Println("  Re-running it never destroys a working configuration unless you opt in.")
	fmt.Println()
	fmt.Print(ui.Section("Prerequisites"))
}

func printSecurityChecklist() {
	fmt.Println()
	fmt.Print(ui.Section("Before going live"))
	fmt.Print(ui.Checklist([]string{
		"Keep the environment file out of version control and backups you share.",
		"Open only ports 80 and 443 on the host firewall.",
		"Point the domain's A/AAAA records at this host before expecting certificates.",
		"Rotate the API keys when a client is decommissioned.",
		"Schedule database backups; this tool does not manage them.",
	}))
	fmt.Println()
}

func printSetupSuccess() {
	fmt.Println("Deployment started.")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  - oslctl status        follow the services")
	fmt.Println("  - oslctl doctor        diagnose the deployment")
	fmt.Println("  - oslctl secrets       show configured credentials")
	fmt.Println()
}
