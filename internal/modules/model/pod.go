package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pod is a team that owns projects.
type Pod struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:text;not null" json:"name"`
	ManagerID *uuid.UUID `gorm:"type:uuid" json:"manager_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Pod <-> User (manager)
	Manager *User `gorm:"foreignKey:ManagerID;references:ID" json:"-"`
}

func (Pod) TableName() string { return "pods" }

func (p *Pod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
