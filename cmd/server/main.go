package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tokenauth/internal/buildinfo"
	"github.com/dmitrijs2005/tokenauth/internal/logging"
	"github.com/dmitrijs2005/tokenauth/internal/server"
	"github.com/dmitrijs2005/tokenauth/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	buildinfo.PrintBuildData(os.Stdout)

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "app init error", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
