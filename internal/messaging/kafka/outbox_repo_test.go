package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("rid-1", "recognition_period", "weekly:2025-W02", "recognition_winner_selected",
		events.RecognitionWinnerSelectedTopic, map[string]string{"period_key": "2025-W02"})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"period_key":"2025-W02"}`, string(event.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(event))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "id", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}

	cases := []struct {
		name   string
		mutate func(e *kafka.OutboxEvent)
		want   error
	}{
		{"missing id", func(e *kafka.OutboxEvent) { e.ID = "" }, kafka.ErrOutboxIDRequired},
		{"missing topic", func(e *kafka.OutboxEvent) { e.Topic = "" }, kafka.ErrOutboxTopicRequired},
		{"payload not json", func(e *kafka.OutboxEvent) { e.Payload = []byte("nope") }, kafka.ErrOutboxPayloadRequired},
		{"unknown status", func(e *kafka.OutboxEvent) { e.Status = "queued" }, kafka.ErrOutboxInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			assert.ErrorIs(t, kafka.ValidateOutboxEvent(e), tc.want)
		})
	}
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event := kafka.OutboxEvent{
		ID: "00000000-0000-0000-0000-000000000001", RequestID: "rid-1",
		AggregateType: "evaluation", AggregateID: "e-1", EventType: "evaluation_submitted",
		Topic: events.EvaluationSubmittedTopic, Payload: []byte(`{"a":1}`), Status: kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{})
	assert.ErrorIs(t, err, kafka.ErrOutboxIDRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "rid-1", "recognition_period", "weekly:2025-W02", "recognition_winner_selected", events.RecognitionWinnerSelectedTopic, []byte(`{}`), kafka.OutboxStatusFailed, 2, created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	got, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "rid-1", got[0].RequestID)
	assert.Equal(t, "weekly:2025-W02", got[0].AggregateID)
	assert.Equal(t, 2, got[0].RetryCount)
	assert.Equal(t, created, got[0].NextRetryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedParksAfterMaxRetries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", kafka.OutboxStatusFailed, "broker down", kafka.MaxOutboxRetries, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", kafka.OutboxStatusSent).
		WillReturnError(errors.New("conn reset"))

	assert.Error(t, kafka.NewOutboxRepository(db).MarkSent(context.Background(), "o-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
