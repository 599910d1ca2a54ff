package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dirdr/openstreetlifting-iac/internal/envfile"
	"github.com/dirdr/openstreetlifting-iac/internal/ui"
)

// secretEntry represents a single configured value for display.
type secretEntry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// SecretsOptions configures the secrets handler.
type SecretsOptions struct {
	EnvPath    string
	Reveal     bool
	JSONOutput bool
}

// Secrets displays the credentials held by the environment file.
// Values are masked unless --reveal is given.
func Secrets(_ context.Context, opts SecretsOptions) error {
	if opts.EnvPath == "" {
		opts.EnvPath = envfile.DefaultPath
	}

	if !envExists(opts.EnvPath) {
		return fmt.Errorf("%s not found, run 'oslctl setup' first", opts.EnvPath)
	}

	settings, err := loadEnv(opts.EnvPath)
	if err != nil {
		return err
	}

	entries := collectSecrets(settings, opts.EnvPath, opts.Reveal)

	if opts.JSONOutput {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printSecretsStyled(entries, opts.Reveal)
	return nil
}

func collectSecrets(settings *envfile.Settings, envPath string, reveal bool) []secretEntry {
	display := func(value string) string {
		if reveal {
			return value
		}
		return mask(value)
	}

	entries := []secretEntry{
		{Category: "Files", Name: "environment file", Value: envPath},
		{Category: "Database", Name: "user", Value: settings.DBUser},
		{Category: "Database", Name: "password", Value: display(settings.DBPassword)},
		{Category: "Database", Name: "database", Value: settings.DBName},
		{Category: "Database", Name: "port", Value: strconv.Itoa(settings.DBPort)},
	}

	for i, key := range settings.APIKeys {
		entries = append(entries, secretEntry{
			Category: "API",
			Name:     fmt.Sprintf("key %d", i+1),
			Value:    display(key),
		})
	}

	return entries
}

// mask hides a secret while keeping enough to recognize it.
func mask(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}

func printSecretsStyled(entries []secretEntry, revealed bool) {
	fmt.Println()
	fmt.Print(ui.Header("OpenStreetLifting credentials"))
	fmt.Println()

	currentCategory := ""
	for _, entry := range entries {
		if entry.Category != currentCategory {
			if currentCategory != "" {
				fmt.Println()
			}
			fmt.Print(ui.Section(entry.Category))
			currentCategory = entry.Category
		}
		fmt.Printf("  %-18s %s\n", entry.Name, entry.Value)
	}

	fmt.Println()
	if !revealed {
		fmt.Println("  Values are masked. Use --reveal to show them.")
		fmt.Println()
	}
}

// HashCredential produces an htpasswd-style bcrypt entry for the
// reverse proxy dashboard.
func HashCredential(ctx context.Context, user string) error {
	if user == "" {
		return fmt.Errorf("user must not be empty")
	}

	password, err := secretInput(ctx, "Dashboard password",
		fmt.Sprintf("Password for dashboard user %q.", user))
	if err != nil {
		return fmt.Errorf("password prompt: %w", err)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Printf("%s:%s\n", user, hash)
	return nil
}
