package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	PodID       *uuid.UUID `gorm:"type:uuid;index:ix_projects_pod_id" json:"pod_id"`
	Status      string     `gorm:"type:text;not null;default:'active'" json:"status"`
	StartDate   *Date      `json:"start_date"`
	EndDate     *Date      `json:"end_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Project <-> Pod
	Pod *Pod `gorm:"foreignKey:PodID;references:ID" json:"-"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
