package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkLog is a time-tracking entry of a user against a task.
type WorkLog struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID           `gorm:"type:uuid;index:ix_work_logs_user_id" json:"user_id"`
	TaskID     uuid.UUID           `gorm:"type:uuid;index:ix_work_logs_task_id" json:"task_id"`
	StartedAt  *time.Time          `json:"started_at"`
	EndedAt    *time.Time          `json:"ended_at"`
	DeltaHours decimal.NullDecimal `gorm:"type:numeric" json:"delta_hours"`
	Notes      *string             `gorm:"type:text" json:"notes"`

	// WorkLog <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// WorkLog <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (WorkLog) TableName() string { return "work_logs" }

func (w *WorkLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
