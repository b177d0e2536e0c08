package main

import (
	"context"
	"flag"
	"log"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/app"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "parse the rubric seed and report missing criteria without writing")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := app.RunSeed(context.Background(), cfg, logger, *dryRun); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}
