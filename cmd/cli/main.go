package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dsavelev/gitnotes/internal/buildinfo"
	"github.com/dsavelev/gitnotes/internal/cli"
	"github.com/dsavelev/gitnotes/internal/config"
	"github.com/dsavelev/gitnotes/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
