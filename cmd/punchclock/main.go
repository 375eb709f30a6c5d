package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"punchclock/internal/cli"
	"punchclock/internal/config"
	"punchclock/internal/logging"
	"punchclock/internal/timesync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	store, err := config.OpenStore(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	client := timesync.NewClient(cfg.Sync.BaseURL, log)
	app := cli.NewApp(store, client, cfg)

	return cli.NewRootCommand(app, cfg).Execute()
}

// newLogger builds the process logger. Flags are only parsed inside Execute,
// which is too late for logger construction, so --verbose is picked out of
// the raw arguments here.
func newLogger(cfg *config.Config) logging.Logger {
	verbose := cfg.Application.Verbose
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" {
			verbose = true
		}
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return logging.NewSlogLogger(slog.New(handler))
}
