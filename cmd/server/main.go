package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/shareall/internal/server"
	"github.com/iudanet/shareall/internal/server/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	logger := cfg.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Open(ctx, cfg, logger, Version)
	if err != nil {
		logger.Error("failed to start", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	if err := app.Run(ctx); err != nil {
		logger.Error("server error", slog.Any("error", err))
		return 1
	}

	return 0
}

func printVersion() {
	fmt.Printf("ShareAll Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
