package app

import (
	"context"
	"fmt"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/staff"

	"gorm.io/gorm"
)

// outboxDDL matches the raw SQL used by kafka.OutboxRepository. aggregate_id
// is text because recognition events are keyed by period, not by uuid.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(64),
	aggregate_type VARCHAR(64) NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type VARCHAR(64) NOT NULL,
	topic VARCHAR(128) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at);
`

// Migrate creates or updates every table the services use.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&rubric.Criterion{},
		&staff.Staff{},
		&evaluation.Record{},
		&evaluation.ScoreRecord{},
		&recognition.Winner{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.WithContext(ctx).Exec(outboxDDL).Error; err != nil {
		return fmt.Errorf("create outbox table: %w", err)
	}
	return nil
}
