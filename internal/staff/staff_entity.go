package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is a directory entry. The rubric is always resolved through PositionID.
type Staff struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FullName     string         `gorm:"not null"`
	Email        string         `gorm:"uniqueIndex:uq_staff_email"`
	PositionID   string         `gorm:"type:varchar(32);index;not null"`
	SupervisorID *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Staff) TableName() string { return "staff" }

// SupervisorScope limits a query to the direct reports of supervisorID.
func SupervisorScope(supervisorID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("supervisor_id = ?", supervisorID)
	}
}
