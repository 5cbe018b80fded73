package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/notekeeper/internal/cli"
	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx := context.Background()

	store, err := cli.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	app := cli.Wire(cfg, store, logger, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "run", "error", err)
	}
}
