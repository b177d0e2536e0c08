package consumer

import (
	"context"
	"encoding/json"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/notification"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"

	"go.uber.org/zap"
)

// ConsumeRecognitionWinners emails every winner_selected event to the
// configured recipients. A message is committed only after the mail is
// accepted; transient send failures are retried on the same message.
func ConsumeRecognitionWinners(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	recipients []string,
	m *metrics.Manager,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.recognition_winner")
	log.Info("recognition winner consumer started", zap.Int("recipients", len(recipients)))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("recognition winner consumer stopped")
				return
			}
			log.Error("fetch recognition winner message failed", zap.Error(err))
			continue
		}

		var event events.RecognitionWinnerSelectedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode recognition_winner_selected event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		rid := requestID(msg, event.RequestID)
		email := notification.RecognitionEmail(recipients, event)
		err = handleWithRetry(ctx, log, func(ctx context.Context) error {
			return mailer.Send(ctx, email)
		})
		if err != nil && ctx.Err() != nil {
			log.Info("recognition winner consumer stopped", zap.String("request_id", rid))
			return
		}
		if err != nil {
			// permanent: acknowledge so the partition keeps moving
			log.Error("send recognition email failed permanently",
				zap.String("request_id", rid),
				zap.String("period_kind", event.PeriodKind),
				zap.String("period_key", event.PeriodKey),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if m != nil {
			m.RecordNotificationSent()
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit recognition winner message failed", zap.Error(err))
			continue
		}

		log.Info("recognition email sent",
			zap.String("request_id", rid),
			zap.String("period_kind", event.PeriodKind),
			zap.String("period_key", event.PeriodKey),
			zap.Int("winners", len(event.Winners)),
		)
	}
}
