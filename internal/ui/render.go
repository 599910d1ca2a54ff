package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsInteractiveTTY reports whether stdout is an interactive terminal.
func IsInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Header renders a command header with an underline.
func Header(title string) string {
	var sb strings.Builder
	sb.WriteString("  " + titleStyle.Render(title) + "\n")
	sb.WriteString("  " + dimStyle.Render(strings.Repeat("═", len(title))) + "\n")
	return sb.String()
}

// Section renders a section title with a divider.
func Section(title string) string {
	var sb strings.Builder
	sb.WriteString("  " + sectionStyle.Render(title) + "\n")
	sb.WriteString("  " + dimStyle.Render(strings.Repeat("─", 35)) + "\n")
	return sb.String()
}

// Row renders a check/cross status row with an optional trailing note.
func Row(name string, ok bool, extra string) string {
	indicator := readyStyle.Render("✓")
	if !ok {
		indicator = failedStyle.Render("✗")
	}

	if extra != "" {
		return fmt.Sprintf("  %s  %-22s %s\n", indicator, name, dimStyle.Render(extra))
	}
	return fmt.Sprintf("  %s  %s\n", indicator, name)
}

// WarnRow renders a yellow advisory row for non-fatal findings.
func WarnRow(name, extra string) string {
	if extra != "" {
		return fmt.Sprintf("  %s  %-22s %s\n", warningStyle.Render("!"), name, dimStyle.Render(extra))
	}
	return fmt.Sprintf("  %s  %s\n", warningStyle.Render("!"), name)
}

// Checklist renders advisory checklist items.
func Checklist(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("  " + dimStyle.Render("•") + " " + item + "\n")
	}
	return sb.String()
}
