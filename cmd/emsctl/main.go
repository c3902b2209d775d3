package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/ems-client/internal/app"
	"github.com/samvad-hq/ems-client/internal/config"
	"github.com/samvad-hq/ems-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "emsctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("emsctl starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	emsctl, err := app.New(cfg, log, os.Stdout)
	if err != nil {
		return err
	}

	if err := emsctl.Run(ctx, os.Args); err != nil {
		logger.ErrorObj("command failed", "error", err.Error())
		return err
	}
	return nil
}
