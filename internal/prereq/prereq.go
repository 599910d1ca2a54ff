// Package prereq checks that the host carries the client tools the
// provisioner depends on.
package prereq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dirdr/openstreetlifting-iac/internal/runner"
)

// Sentinel errors for the provisioner's fatal failure kinds.
var (
	// ErrMissingDependency indicates a required client tool is absent.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrMissingPrerequisite indicates a required external resource is
	// absent and the operator declined to create it.
	ErrMissingPrerequisite = errors.New("missing prerequisite")
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the default set of tools to check.
// The container engine is always required.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Required for running the API, database and reverse proxy containers",
			InstallURL:  "https://docs.docker.com/engine/install/",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "dig",
			Required:    false,
			Description: "Useful for verifying that the configured domain resolves",
			InstallURL:  "https://www.isc.org/bind/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingDependency, strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(run runner.Runner, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := run.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault(run runner.Runner) *CheckResults {
	return Check(run, DefaultTools())
}

// CheckAll checks all tools (default + optional).
func CheckAll(run runner.Runner) *CheckResults {
	defaults := DefaultTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(run, all)
}

// ComposeCommand is the resolved compose CLI invocation form.
//
// The compose CLI ships either as an engine plugin ("docker compose") or
// as a standalone binary ("docker-compose"). The two forms are
// interchangeable; ResolveCompose picks one once at startup and every
// later invocation uses it unchanged.
type ComposeCommand struct {
	// Bin is the binary to invoke.
	Bin string

	// Prefix holds leading arguments placed before the compose
	// subcommand, e.g. ["compose"] for the plugin form.
	Prefix []string
}

// Args builds the full argument list for a compose subcommand.
func (c ComposeCommand) Args(args ...string) []string {
	full := make([]string, 0, len(c.Prefix)+len(args))
	full = append(full, c.Prefix...)
	full = append(full, args...)
	return full
}

// String renders the invocation form for display.
func (c ComposeCommand) String() string {
	return strings.Join(append([]string{c.Bin}, c.Prefix...), " ")
}

// ResolveCompose determines which compose invocation form is available,
// preferring the engine plugin over the standalone binary.
func ResolveCompose(ctx context.Context, run runner.Runner) (ComposeCommand, error) {
	if _, err := run.Run(ctx, "docker", "compose", "version"); err == nil {
		return ComposeCommand{Bin: "docker", Prefix: []string{"compose"}}, nil
	}

	if _, err := run.LookPath("docker-compose"); err == nil {
		return ComposeCommand{Bin: "docker-compose"}, nil
	}

	return ComposeCommand{}, fmt.Errorf("%w: compose CLI not found, install the compose plugin (https://docs.docker.com/compose/install/)", ErrMissingDependency)
}
