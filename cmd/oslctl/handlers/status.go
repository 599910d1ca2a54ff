package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/dirdr/openstreetlifting-iac/internal/ui"
)

// defaultWatchInterval is how often --watch refreshes the listing.
const defaultWatchInterval = 5 * time.Second

// Factory function variables for status - can be replaced in tests.
var (
	runWatchTUI      = ui.RunWatch
	isInteractiveTTY = ui.IsInteractiveTTY
)

// StatusOptions configures the status handler.
type StatusOptions struct {
	ComposeFile string
	Watch       bool
	Interval    time.Duration
}

// Status renders the compose service listing, once or continuously.
func Status(ctx context.Context, opts StatusOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = defaultWatchInterval
	}

	run := newRunner()

	if results := checkDefaultPrereqs(run); results.HasErrors() {
		return results.Error()
	}
	form, err := resolveComposeForm(ctx, run)
	if err != nil {
		return err
	}

	client := newComposeClient(run, form, opts.ComposeFile)

	if opts.Watch {
		if isInteractiveTTY() {
			return runWatchTUI(ui.NewWatchModel("OpenStreetLifting services", opts.Interval, client.PS))
		}
		return statusWatchPlain(ctx, client, opts.Interval)
	}

	return statusShow(ctx, client)
}

// statusShow prints the service listing once.
func statusShow(ctx context.Context, client composeClient) error {
	listing, err := client.PS(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(ui.Section("Services"))
	fmt.Println(listing)
	return nil
}

// statusWatchPlain re-renders the listing on a ticker for non-TTY
// output.
func statusWatchPlain(ctx context.Context, client composeClient, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := statusShow(ctx, client); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fmt.Print("\033[H\033[2J")
			if err := statusShow(ctx, client); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}
