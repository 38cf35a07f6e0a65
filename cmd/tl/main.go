package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"timeledger/internal/api"
	"timeledger/internal/cli"
	"timeledger/internal/config"
	"timeledger/internal/logging"
	"timeledger/internal/services"
)

func main() {
	// Ctrl-C ends `tl status --watch` cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader(), openEngine, os.Stdout)
	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}

// openEngine wires the store, services and API for one command run
func openEngine(cfg *config.Config) (api.API, func(), error) {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	container, err := services.NewServiceContainer(repo, cfg, nil, logger)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	apiInstance := api.New(container)
	release := func() {
		apiInstance.Close()
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close database", logging.FieldError, err)
		}
	}
	return apiInstance, release, nil
}
