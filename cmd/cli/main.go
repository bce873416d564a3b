package main

import (
	"context"
	"log"
	"os"

	"socialctl/internal/buildinfo"
	"socialctl/internal/client/cli"
	"socialctl/internal/client/config"
	"socialctl/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
