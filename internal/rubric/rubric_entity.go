package rubric

import "time"

// Criterion is one row of position_rubric_criteria: the text for a single
// position x pillar x level.
type Criterion struct {
	PositionID   string    `gorm:"type:varchar(32);primaryKey"`
	PillarLetter string    `gorm:"type:varchar(1);primaryKey"`
	Level        int       `gorm:"primaryKey"`
	Framework    string    `gorm:"type:varchar(16);not null"`
	Description  string    `gorm:"type:text;not null"`
	UpdatedBy    string    `gorm:"type:varchar(64)"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Criterion) TableName() string { return "position_rubric_criteria" }
