// Package compose drives the container engine and compose CLI for the
// deployment stack.
package compose

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dirdr/openstreetlifting-iac/internal/prereq"
	"github.com/dirdr/openstreetlifting-iac/internal/runner"
)

// NetworkName is the shared network the reverse proxy and the services
// attach to. It is created once and owned by the engine, not by this
// repository.
const NetworkName = "proxy"

// DefaultFile is the compose file describing the deployment stack.
const DefaultFile = "docker-compose.yml"

// Client wraps engine and compose invocations for one deployment.
type Client struct {
	run     runner.Runner
	compose prereq.ComposeCommand
	file    string
}

// NewClient builds a Client using the resolved compose invocation form.
// An empty file selects DefaultFile.
func NewClient(run runner.Runner, compose prereq.ComposeCommand, file string) *Client {
	if file == "" {
		file = DefaultFile
	}
	return &Client{run: run, compose: compose, file: file}
}

// File returns the compose file path the client operates on.
func (c *Client) File() string {
	return c.file
}

// NetworkExists reports whether the named engine network is present.
func (c *Client) NetworkExists(ctx context.Context, name string) (bool, error) {
	result, err := c.run.Run(ctx, "docker", "network", "inspect", name)
	if err == nil {
		return true, nil
	}
	// Exit code 1 is the engine's "no such network" answer; anything
	// else means the engine itself is unhealthy.
	if result != nil && result.ExitCode == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to inspect network %s: %w", name, err)
}

// CreateNetwork creates the named engine network.
func (c *Client) CreateNetwork(ctx context.Context, name string) error {
	if _, err := c.run.Run(ctx, "docker", "network", "create", name); err != nil {
		return fmt.Errorf("failed to create network %s: %w", name, err)
	}
	return nil
}

// Pull downloads the images referenced by the compose file. Progress
// output goes straight to the terminal.
func (c *Client) Pull(ctx context.Context) error {
	return c.run.RunInteractive(ctx, c.compose.Bin, c.compose.Args("-f", c.file, "pull")...)
}

// Up starts all declared services in the background.
func (c *Client) Up(ctx context.Context) error {
	return c.run.RunInteractive(ctx, c.compose.Bin, c.compose.Args("-f", c.file, "up", "-d")...)
}

// PS returns the compose service status listing.
func (c *Client) PS(ctx context.Context) (string, error) {
	result, err := c.run.Run(ctx, c.compose.Bin, c.compose.Args("-f", c.file, "ps")...)
	if err != nil {
		return "", fmt.Errorf("failed to query service status: %w", err)
	}
	return result.Stdout, nil
}

// Service is one entry of the compose file.
type Service struct {
	Name  string
	Image string
}

// Services parses the compose file and returns the declared services
// sorted by name.
func (c *Client) Services() ([]Service, error) {
	data, err := os.ReadFile(c.file) // #nosec G304 -- path comes from internal constants or an operator flag
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file %s: %w", c.file, err)
	}

	var parsed struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %s: %w", c.file, err)
	}

	services := make([]Service, 0, len(parsed.Services))
	for name, svc := range parsed.Services {
		services = append(services, Service{Name: name, Image: svc.Image})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}
