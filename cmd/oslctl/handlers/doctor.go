package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dirdr/openstreetlifting-iac/internal/compose"
	"github.com/dirdr/openstreetlifting-iac/internal/envfile"
	"github.com/dirdr/openstreetlifting-iac/internal/prereq"
	"github.com/dirdr/openstreetlifting-iac/internal/ui"
)

// DoctorStatus represents the deployment diagnostic status.
type DoctorStatus struct {
	Engine       ToolHealth     `json:"engine"`
	Compose      ToolHealth     `json:"compose"`
	NetworkReady bool           `json:"networkReady"`
	Environment  EnvHealth      `json:"environment"`
	DNS          *DNSHealth     `json:"dns,omitempty"`
	Services     []ServiceState `json:"services,omitempty"`
}

// ToolHealth represents the availability of a client tool.
type ToolHealth struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// EnvHealth represents the state of the environment file.
type EnvHealth struct {
	Present      bool     `json:"present"`
	Placeholders []string `json:"placeholders,omitempty"`
	Valid        bool     `json:"valid"`
	Message      string   `json:"message,omitempty"`
}

// DNSHealth represents the domain resolution probe.
type DNSHealth struct {
	Domain    string   `json:"domain"`
	Resolved  bool     `json:"resolved"`
	Addresses []string `json:"addresses,omitempty"`
}

// ServiceState represents one declared compose service.
type ServiceState struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// DoctorOptions configures the doctor handler.
type DoctorOptions struct {
	ComposeFile string
	EnvPath     string
	JSONOutput  bool
}

// Doctor diagnoses the deployment without mutating anything: tool
// presence, the shared network, the environment file and DNS for the
// configured domain.
func Doctor(ctx context.Context, opts DoctorOptions) error {
	if opts.EnvPath == "" {
		opts.EnvPath = envfile.DefaultPath
	}

	run := newRunner()
	status := &DoctorStatus{}

	results := checkDefaultPrereqs(run)
	for _, result := range results.Results {
		if result.Tool.Name == "docker" {
			status.Engine = ToolHealth{Found: result.Found, Path: result.Path}
		}
	}

	var client composeClient
	if status.Engine.Found {
		if form, err := resolveComposeForm(ctx, run); err == nil {
			status.Compose = ToolHealth{Found: true, Path: form.String()}
			client = newComposeClient(run, form, opts.ComposeFile)
		}
	}

	if client != nil {
		if exists, err := client.NetworkExists(ctx, compose.NetworkName); err == nil {
			status.NetworkReady = exists
		}
		if services, err := client.Services(); err == nil {
			for _, svc := range services {
				status.Services = append(status.Services, ServiceState{Name: svc.Name, Image: svc.Image})
			}
		}
	}

	status.Environment = probeEnvironment(opts.EnvPath)

	if settings, err := loadEnv(opts.EnvPath); err == nil && settings.Domain != "" {
		result := resolveDomain(ctx, settings.Domain)
		status.DNS = &DNSHealth{
			Domain:    result.Domain,
			Resolved:  result.OK(),
			Addresses: result.Addresses,
		}
	}

	if opts.JSONOutput {
		return printDoctorJSON(status)
	}
	printDoctorFormatted(status)
	return nil
}

// probeEnvironment inspects the environment file without changing it.
func probeEnvironment(envPath string) EnvHealth {
	health := EnvHealth{}

	if !envExists(envPath) {
		health.Message = fmt.Sprintf("%s not found, run 'oslctl setup'", envPath)
		return health
	}
	health.Present = true

	placeholders, err := envfile.Placeholders(envPath)
	if err != nil {
		health.Message = err.Error()
		return health
	}
	health.Placeholders = placeholders
	if len(placeholders) > 0 {
		health.Message = "template placeholders still present, re-run 'oslctl setup'"
		return health
	}

	settings, err := loadEnv(envPath)
	if err != nil {
		health.Message = err.Error()
		return health
	}
	if err := settings.Validate(); err != nil {
		health.Message = err.Error()
		return health
	}

	health.Valid = true
	return health
}

// printDoctorJSON outputs status as JSON.
func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printDoctorFormatted outputs status as styled rows.
func printDoctorFormatted(status *DoctorStatus) {
	fmt.Println()
	fmt.Print(ui.Header("OpenStreetLifting deployment"))
	fmt.Println()

	fmt.Print(ui.Section("Host"))
	fmt.Print(ui.Row("docker", status.Engine.Found, status.Engine.Path))
	fmt.Print(ui.Row("compose", status.Compose.Found, status.Compose.Path))
	fmt.Print(ui.Row(fmt.Sprintf("network %q", compose.NetworkName), status.NetworkReady, ""))
	fmt.Println()

	fmt.Print(ui.Section("Configuration"))
	envExtra := status.Environment.Message
	if len(status.Environment.Placeholders) > 0 {
		envExtra = "placeholders: " + strings.Join(status.Environment.Placeholders, ", ")
	}
	fmt.Print(ui.Row("environment file", status.Environment.Valid, envExtra))

	if status.DNS != nil {
		dnsExtra := ""
		if status.DNS.Resolved {
			dnsExtra = strings.Join(status.DNS.Addresses, ", ")
		}
		fmt.Print(ui.Row("DNS "+status.DNS.Domain, status.DNS.Resolved, dnsExtra))
	}

	if len(status.Services) > 0 {
		fmt.Println()
		fmt.Print(ui.Section("Declared services"))
		for _, svc := range status.Services {
			fmt.Print(ui.Row(svc.Name, true, svc.Image))
		}
	}
	fmt.Println()

	if !status.Engine.Found {
		fmt.Printf("  Install the container engine first: %s\n\n", prereq.DefaultTools()[0].InstallURL)
	} else if !status.Environment.Valid {
		fmt.Println("  Run 'oslctl setup' to finish configuring the deployment.")
		fmt.Println()
	}
}
