package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/uwimg/uwimg"
	"github.com/uwimg/uwimg/internal/logger"
	"github.com/uwimg/uwimg/internal/pipeline"
)

// Command line flags
var (
	dataDir    = flag.String("data", "data", "directory holding dogsmall.jpg, dog.jpg, ron.png and dumbledore.png")
	resultsDir = flag.String("results", "results", "directory the results are written to")
	loglevel   = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")
)

func main() {
	// Parse environment variables
	envy.Parse("UWIMG")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := os.MkdirAll(*resultsDir, 0o755); err != nil {
		log.Fatalf("error creating results directory: %s", err)
	}

	log.Infow("running homework", "version", uwimg.Version.String(), "data", *dataDir, "results", *resultsDir)
	if err := pipeline.Homework(*dataDir, *resultsDir, log).Run(ctx); err != nil {
		log.Fatalf("homework failed: %s", err)
	}
}
