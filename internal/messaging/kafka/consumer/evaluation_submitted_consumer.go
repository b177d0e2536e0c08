package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Recomputer interface {
	Recompute(ctx context.Context, req recognition.RecomputeRequest) (recognition.PeriodWinnersResponse, error)
}

// ConsumeEvaluationSubmitted refreshes the weekly recognition of the week an
// evaluation was dated in.
func ConsumeEvaluationSubmitted(
	ctx context.Context,
	reader MessageReader,
	recomputer Recomputer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.evaluation_submitted")
	log.Info("evaluation submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("evaluation submitted consumer stopped")
				return
			}
			log.Error("fetch evaluation submitted message failed", zap.Error(err))
			continue
		}

		var event events.EvaluationSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode evaluation_submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		date, err := time.Parse("2006-01-02", event.EvaluationDate)
		if err != nil {
			log.Error("evaluation_submitted event has invalid date",
				zap.String("evaluation_id", event.EvaluationID),
				zap.String("evaluation_date", event.EvaluationDate),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		week, _ := recognition.PeriodFor(recognition.Weekly, date)

		rctx := contextutil.WithRequestID(ctx, requestID(msg, event.RequestID))
		rctx = contextutil.WithActor(rctx, SystemActorID, rbac.RoleAdmin)
		err = handleWithRetry(rctx, log, func(ctx context.Context) error {
			_, err := recomputer.Recompute(ctx, recognition.RecomputeRequest{Kind: string(week.Kind), Key: week.Key})
			return err
		})
		if err != nil && ctx.Err() != nil {
			log.Info("evaluation submitted consumer stopped")
			return
		}
		if err != nil {
			log.Error("recompute weekly recognition failed permanently",
				zap.String("evaluation_id", event.EvaluationID),
				zap.String("week", week.Key),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit evaluation submitted message failed", zap.Error(err))
			continue
		}

		log.Info("weekly recognition refreshed from evaluation_submitted event",
			zap.String("evaluation_id", event.EvaluationID),
			zap.String("week", week.Key),
		)
	}
}
