package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug  string    `gorm:"type:text;not null;uniqueIndex:uq_tags_slug" json:"slug"`
	Label string    `gorm:"type:text;not null" json:"label"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaskTag links a task to a tag. One row per (task, tag) pair.
type TaskTag struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	TagID  uuid.UUID `gorm:"type:uuid;primaryKey;index:ix_task_tags_tag_id" json:"tag_id"`

	// TaskTag <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// TaskTag <-> Tag
	Tag *Tag `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TaskTag) TableName() string { return "task_tags" }
