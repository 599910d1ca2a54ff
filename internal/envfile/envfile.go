// Package envfile manages the deployment environment file.
//
// The environment file is a plain key=value file consumed by the
// compose stack. It is materialized once from a checked-in template and
// holds the only secrets this repository is responsible for: the
// database password and the API authentication keys.
package envfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	// DefaultPath is the target environment file, relative to the
	// deployment directory.
	DefaultPath = ".env"

	// TemplatePath is the checked-in template the environment file is
	// created from.
	TemplatePath = ".env.example"

	// PasswordPlaceholder marks where the generated database password
	// is substituted in the template.
	PasswordPlaceholder = "CHANGE_ME_IN_PRODUCTION"

	// APIKeyPlaceholder marks where the generated API key is
	// substituted in the template.
	APIKeyPlaceholder = "CHANGE_ME_API_KEY"
)

// Settings is the configuration record held by the environment file.
type Settings struct {
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBName     string `validate:"required"`
	DBPort     int    `validate:"required,gte=1,lte=65535"`

	// APIKeys holds the accepted API authentication keys, stored
	// comma-joined in the file.
	APIKeys []string `validate:"required,min=1,dive,required"`

	// BindAddress is the host address the reverse proxy binds to.
	BindAddress string `validate:"required,ip"`
	ListenPort  int    `validate:"required,gte=1,lte=65535"`

	// Domain is the public domain the stack is served under. Optional;
	// only used for the DNS verification step.
	Domain string
}

var validate = validator.New()

// Load reads and parses the environment file at path.
func Load(path string) (*Settings, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}

	dbPort, err := parsePort(values["DB_PORT"], 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	listenPort, err := parsePort(values["LISTEN_PORT"], 443)
	if err != nil {
		return nil, fmt.Errorf("invalid LISTEN_PORT: %w", err)
	}

	bindAddress := values["BIND_ADDRESS"]
	if bindAddress == "" {
		bindAddress = "0.0.0.0"
	}

	return &Settings{
		DBUser:      values["DB_USER"],
		DBPassword:  values["DB_PASSWORD"],
		DBName:      values["DB_NAME"],
		DBPort:      dbPort,
		APIKeys:     splitKeys(values["API_KEYS"]),
		BindAddress: bindAddress,
		ListenPort:  listenPort,
		Domain:      values["DOMAIN"],
	}, nil
}

// Validate checks the settings for completeness and rejects values
// still carrying a template placeholder.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid environment settings: %w", err)
	}

	if s.DBPassword == PasswordPlaceholder {
		return fmt.Errorf("DB_PASSWORD still holds the template placeholder, run setup to generate a real password")
	}
	for _, key := range s.APIKeys {
		if key == APIKeyPlaceholder {
			return fmt.Errorf("API_KEYS still holds the template placeholder, run setup to generate a real key")
		}
	}
	return nil
}

// Placeholders reports which placeholder tokens are still present in
// the file at path. Used by doctor to flag a half-configured file.
func Placeholders(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from internal constants or an operator flag
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}

	var found []string
	for _, token := range []string{PasswordPlaceholder, APIKeyPlaceholder} {
		if strings.Contains(string(data), token) {
			found = append(found, token)
		}
	}
	return found, nil
}

// Exists reports whether an environment file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Materialize copies the template to the target path.
//
// The copy preserves the template byte-for-byte; placeholder
// substitution is a separate step so a failed substitution leaves an
// inspectable file rather than a half-written one.
func Materialize(templatePath, targetPath string) error {
	data, err := os.ReadFile(templatePath) // #nosec G304 -- path comes from internal constants or an operator flag
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	// 0600: the file will hold secrets once substitution runs.
	if err := os.WriteFile(targetPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", targetPath, err)
	}
	return nil
}

// Substitute replaces every occurrence of token in the file at path
// with value, leaving all other content untouched. It is an error for
// the token to be absent.
//
// The rewrite happens in place with no backup artifact: the final file
// is the only trace left on disk.
func Substitute(path, token, value string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from internal constants or an operator flag
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	if !strings.Contains(content, token) {
		return fmt.Errorf("placeholder %q not found in %s", token, path)
	}

	content = strings.ReplaceAll(content, token, value)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func parsePort(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return port, nil
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}
