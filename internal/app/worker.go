package app

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka/producer"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	in, err := Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer in.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(in.SQLDB)

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, in.Metrics, logger, cfg.OutboxPollInterval)

	log.Info("worker shut down")
	return nil
}
