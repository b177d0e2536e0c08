package app

import (
	"context"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"

	"go.uber.org/zap"
)

// RunAPI serves HTTP until SIGINT/SIGTERM.
func RunAPI(cfg *config.Config, logger *zap.Logger) error {
	in, err := Connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := Migrate(context.Background(), in.GormDB); err != nil {
		return err
	}

	audit := bootstrap.NewStdoutAuditLogger(logger)
	router, err := NewRouter(in, audit)
	if err != nil {
		return err
	}

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	return bootstrap.RunHTTPServer(
		ctx,
		router,
		bootstrap.ServerConfig{
			Port:         cfg.HTTPPort,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		audit,
		logger,
	)
}
