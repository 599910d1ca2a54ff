// Package main is the entry point for the oslctl CLI.
//
// oslctl provisions and operates the OpenStreetLifting deployment: a
// REST API and its PostgreSQL database running behind a reverse proxy,
// orchestrated by the compose CLI. The tool prepares the environment
// file, ensures the shared proxy network exists and hands off to the
// orchestrator; the services themselves are pre-built images it only
// references.
//
// Commands: setup, doctor, status, secrets.
//
// For detailed usage information, run:
//
//	oslctl --help
package main

import (
	"fmt"
	"os"

	"github.com/dirdr/openstreetlifting-iac/cmd/oslctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
