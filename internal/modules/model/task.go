package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusBlocked    = "blocked"

	DefaultTaskPriority = 3
)

type Task struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      *uuid.UUID          `gorm:"type:uuid;index:ix_tasks_project_id" json:"project_id"`
	Title          string              `gorm:"type:text;not null" json:"title"`
	Description    *string             `gorm:"type:text" json:"description"`
	Status         string              `gorm:"type:text;not null;default:'todo';index:ix_tasks_status" json:"status"`
	Priority       int                 `gorm:"default:3" json:"priority"`
	CreatedBy      *uuid.UUID          `gorm:"type:uuid" json:"created_by"`
	StartDate      *Date               `json:"start_date"`
	DueDate        *Date               `json:"due_date"`
	EstimatedHours decimal.NullDecimal `gorm:"type:numeric" json:"estimated_hours"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Task <-> User (creator)
	Creator *User `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
