package app

import (
	"sync"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/config"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka/consumer"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer refreshes weekly recognition on every submitted evaluation and
// emails winner announcements, until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	in, err := Connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	svc := buildServices(in, bootstrap.NewStdoutAuditLogger(logger))

	var mailer notification.Mailer = notification.LogMailer{Logger: logger}
	if cfg.SMTPEnabled() {
		mailer = notification.NewSMTPMailer(notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
	}

	evaluationReader := newReader(cfg, events.EvaluationSubmittedTopic, cfg.KafkaGroupID+"-recompute")
	defer evaluationReader.Close()
	winnerReader := newReader(cfg, events.RecognitionWinnerSelectedTopic, cfg.KafkaGroupID)
	defer winnerReader.Close()

	ctx, cancel := bootstrap.SignalContext()
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEvaluationSubmitted(ctx, evaluationReader, svc.recognition, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeRecognitionWinners(ctx, winnerReader, mailer, cfg.RecognitionRecipients, in.Metrics, logger)
	}()
	wg.Wait()

	log.Info("consumer shut down")
	return nil
}

func newReader(cfg *config.Config, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
