// Package main is the entry point for the quant valuation tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/quant/cmd/quant/commands"
	"go.trai.ch/quant/internal/app"
	"go.trai.ch/quant/internal/core/domain"
	_ "go.trai.ch/quant/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, err := app.NewApp(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// Failed valuations are already in the rendered report.
		if errors.Is(err, domain.ErrValuationFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
