// Package secretgen generates credential values for the deployment
// environment file.
//
// Generated values are safe for unescaped embedding in key=value
// configuration lines: the password alphabet excludes the base64
// characters `=`, `+` and `/`, and API keys are plain hexadecimal.
package secretgen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// PasswordLength is the length of generated database passwords.
	PasswordLength = 32

	// APIKeyBytes is the number of random bytes in a generated API key.
	// The rendered key is twice this length in hexadecimal characters.
	APIKeyBytes = 32
)

// Password generates a random password of exactly PasswordLength
// characters drawn from the base64 alphabet with `=`, `+` and `/`
// removed.
func Password() (string, error) {
	var sb strings.Builder

	// Filtering can shorten a single draw below the target length, so
	// draw until enough characters remain.
	for sb.Len() < PasswordLength {
		buf := make([]byte, PasswordLength)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		encoded := base64.StdEncoding.EncodeToString(buf)
		for _, c := range encoded {
			if c == '=' || c == '+' || c == '/' {
				continue
			}
			sb.WriteRune(c)
		}
	}

	return sb.String()[:PasswordLength], nil
}

// APIKey generates a random API key rendered as a lowercase
// hexadecimal string of 2*APIKeyBytes characters.
func APIKey() (string, error) {
	buf := make([]byte, APIKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
