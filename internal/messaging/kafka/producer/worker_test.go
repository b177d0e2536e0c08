package producer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	kafkaMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka/mock"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	t.Run("publishes and marks each event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg))
		writer := &fakeWriter{failTopic: events.RecognitionWinnerSelectedTopic}

		repo.EXPECT().ListPending(gomock.Any(), batchSize).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateType: "evaluation", AggregateID: "e-1", EventType: events.EvaluationSubmittedType, Topic: events.EvaluationSubmittedTopic, Payload: []byte(`{}`)},
			{ID: "o-2", AggregateType: "recognition_period", AggregateID: "weekly:2024-01-06", EventType: events.RecognitionWinnerSelectedType, Topic: events.RecognitionWinnerSelectedTopic, Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-1").Return(nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "o-2", "broker unavailable").Return(nil)

		err := processPendingEvents(context.Background(), repo, writer, m, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "e-1", string(writer.written[0].Key))
		assert.Equal(t, "event_type", writer.written[0].Headers[0].Key)
		expected := `
# HELP hlr_outbox_failed_total Outbox events that failed to publish
# TYPE hlr_outbox_failed_total counter
hlr_outbox_failed_total 1
# HELP hlr_outbox_published_total Outbox events published to Kafka
# TYPE hlr_outbox_published_total counter
hlr_outbox_published_total 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
			"hlr_outbox_published_total", "hlr_outbox_failed_total"))
	})

	t.Run("list failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, errors.New("db down"))

		err := processPendingEvents(context.Background(), repo, &fakeWriter{}, nil, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
