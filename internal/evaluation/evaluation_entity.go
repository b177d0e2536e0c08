package evaluation

import (
	"time"

	"github.com/google/uuid"
)

// Record is the stored header of an evaluation. The overall score is not
// stored; it is recomputed from Scores on load.
type Record struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	StaffID        uuid.UUID     `gorm:"type:uuid;index;not null"`
	EvaluatorID    uuid.UUID     `gorm:"type:uuid;index;not null"`
	PositionID     string        `gorm:"type:varchar(32);not null"`
	Framework      string        `gorm:"type:varchar(16);index;not null"`
	EvaluationDate time.Time     `gorm:"type:date;index;not null"`
	Scores         []ScoreRecord `gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
}

func (Record) TableName() string { return "evaluations" }

type ScoreRecord struct {
	EvaluationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PillarLetter string    `gorm:"type:char(1);primaryKey"`
	Ordinal      int       `gorm:"not null"`
	Score        int       `gorm:"not null"`
	Comment      string    `gorm:"type:text;not null"`
}

func (ScoreRecord) TableName() string { return "evaluation_pillar_scores" }
