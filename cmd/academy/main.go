package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trustlayerlabs/academy/internal/client/cli"
	"github.com/trustlayerlabs/academy/internal/client/config"
	"github.com/trustlayerlabs/academy/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close session store", "error", err)
		}
	}()

	app.Run(ctx)

}
