// Package prompt implements the provisioner's operator decision points.
//
// Every blocking question the provisioner asks goes through one of
// these helpers so handlers can inject canned answers in tests.
package prompt

import (
	"context"

	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question and returns the operator's answer.
func Confirm(ctx context.Context, title, description string, defaultYes bool) (bool, error) {
	answer := defaultYes

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return answer, nil
}

// Input asks for a free-form value. An empty answer is valid; callers
// treat it as "generate one for me" where that applies.
func Input(ctx context.Context, title, description, placeholder string) (string, error) {
	var answer string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Value(&answer),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// SecretInput asks for a value without echoing it to the terminal.
func SecretInput(ctx context.Context, title, description string) (string, error) {
	var answer string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				EchoMode(huh.EchoModePassword).
				Value(&answer),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return answer, nil
}
