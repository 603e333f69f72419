// Command snapsort is the CLI entrypoint for the snapsort photo organizer.
//
// It wires signal handling into a cancellable context and hands off to the
// command tree; everything else lives in internal/cli.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumafold/snapsort/internal/cli"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel on SIGINT/SIGTERM so the pipeline stops between files without
	// leaving partial output.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version+" ("+commit+")"); err != nil {
		if !errors.Is(err, cli.ErrFilesFailed) {
			fmt.Fprintf(os.Stderr, "snapsort: %v\n", err)
		}
		return 1
	}
	return 0
}
