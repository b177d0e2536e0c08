package recognition

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Winner is the stored recognition for one framework in one period. The
// snapshot is a copy; it does not reference the evaluation or staff rows.
type Winner struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PeriodKind string         `gorm:"type:varchar(16);not null;uniqueIndex:uq_recognition_period_framework,priority:1"`
	PeriodKey  string         `gorm:"type:varchar(16);not null;uniqueIndex:uq_recognition_period_framework,priority:2"`
	Framework  string         `gorm:"type:varchar(16);not null;uniqueIndex:uq_recognition_period_framework,priority:3"`
	PeriodFrom time.Time      `gorm:"type:date;not null"`
	PeriodTo   time.Time      `gorm:"type:date;not null"`
	StaffID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	Snapshot   datatypes.JSON `gorm:"type:jsonb;not null"`
	SelectedBy string         `gorm:"type:varchar(64)"`
	SelectedAt time.Time      `gorm:"not null"`
	UpdatedAt  time.Time
}

func (Winner) TableName() string { return "recognition_winners" }
