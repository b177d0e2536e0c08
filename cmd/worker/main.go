package main

import (
	"log"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/app"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
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

	apperror.Init()

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
