package consumer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/notification"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// SystemActorID marks recognition recomputed by the consumer rather than a
// person.
const SystemActorID = "system:evaluation-consumer"

// Committing a later offset acknowledges every earlier one on the partition,
// so a message that failed transiently is retried in place until it succeeds.
var (
	retryBaseDelay = time.Second
	retryMaxDelay  = time.Minute
)

// handleWithRetry runs handle until it succeeds, fails permanently, or ctx
// ends. The returned error is either the permanent failure or ctx.Err().
func handleWithRetry(ctx context.Context, log *zap.Logger, handle func(ctx context.Context) error) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := handle(ctx)
		if err == nil || permanent(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Warn("message handling failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, retryMaxDelay)
	}
}

// permanent reports errors that no retry can fix: client-class AppErrors
// (unknown staff, invalid period) and missing mail recipients.
func permanent(err error) bool {
	if errors.Is(err, notification.ErrNoRecipients) {
		return true
	}
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError
}

// requestID prefers the id carried in the payload and falls back to the
// request_id header the outbox worker sets.
func requestID(msg kafkago.Message, fromPayload string) string {
	if fromPayload != "" {
		return fromPayload
	}
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			return string(h.Value)
		}
	}
	return ""
}
