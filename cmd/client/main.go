package main

import (
	"context"
	"log"
	"os"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/buildinfo"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/cli"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/config"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewText(os.Stderr, cfg.Level())

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
