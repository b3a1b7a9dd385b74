// Package main is the entry point for the agskills CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sickn33/agskills/cmd/agskills/commands"
	"github.com/sickn33/agskills/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if s := errors.Suggestion(err); s != "" {
			fmt.Fprintln(os.Stderr, s)
		}
		os.Exit(errors.ExitCode(err))
	}
}
