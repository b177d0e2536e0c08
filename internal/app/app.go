package app

import (
	"database/sql"
	"fmt"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by every process.
type Infra struct {
	Config  *config.Config
	Logger  *zap.Logger
	GormDB  *gorm.DB
	SQLDB   *sql.DB
	Redis   *redis.Client
	Metrics *metrics.Manager
}

// Connect opens the database and, when withRedis is set, Redis.
func Connect(cfg *config.Config, logger *zap.Logger, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres(), cfg.ConnectRetries)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	logger.Info("database connection established", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	infra := &Infra{
		Config:  cfg,
		Logger:  logger,
		GormDB:  gormDB,
		SQLDB:   sqlDB,
		Metrics: metrics.Default(),
	}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		infra.Redis = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("close redis failed", zap.Error(err))
		}
	}
	if err := i.SQLDB.Close(); err != nil {
		i.Logger.Warn("close database failed", zap.Error(err))
	}
}
