package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/shareall/internal/client/api"
	"github.com/iudanet/shareall/internal/client/cli"
	"github.com/iudanet/shareall/internal/client/iocli"
	"github.com/iudanet/shareall/internal/client/storage/boltdb"
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
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", envOr("SHAREALL_SERVER", "http://localhost:8080"), "Server URL")
	dbPath := flag.String("db", envOr("SHAREALL_CLIENT_DB", "shareall-client.db"), "Path to local database")

	flag.Parse()

	stdio := iocli.NewStdio()

	// Show version and exit if requested
	if *showVersion {
		printVersion(stdio)
		return 0
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", slog.Any("error", err))
		}
	}()

	c := cli.New(stdio, api.NewClient(*serverURL), boltStorage)

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func printVersion(io iocli.IO) {
	io.Printf("ShareAll Client\n")
	io.Printf("Version:    %s\n", Version)
	io.Printf("Build Date: %s\n", BuildDate)
	io.Printf("Git Commit: %s\n", GitCommit)
}
