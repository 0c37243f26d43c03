package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AssignmentRoleOwner    = "owner"
	AssignmentRoleAssignee = "assignee"
	AssignmentRoleReviewer = "reviewer"
)

type TaskAssignment struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID         uuid.UUID           `gorm:"type:uuid;index:ix_task_assignments_task_id" json:"task_id"`
	UserID         uuid.UUID           `gorm:"type:uuid;index:ix_task_assignments_user_id" json:"user_id"`
	Role           string              `gorm:"type:text;not null;default:'assignee'" json:"role"`
	PlannedDay     *Date               `json:"planned_day"`
	EstimatedHours decimal.NullDecimal `gorm:"type:numeric" json:"estimated_hours"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// TaskAssignment <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// TaskAssignment <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TaskAssignment) TableName() string { return "task_assignments" }

func (a *TaskAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
