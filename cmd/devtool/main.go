package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&SeedCommand{})
	r.Register(&ExportCommand{})
	r.Register(&CheckDBCommand{})
	r.Register(&SetupCommand{})
	r.Register(&ResetCommand{})
	return r
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := newRegistry()
	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
