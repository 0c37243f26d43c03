package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sent flags are stored as text, not boolean.
const (
	NotificationSent    = "true"
	NotificationPending = "false"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index:ix_notifications_user_id_sent,priority:1" json:"user_id"`
	Payload string    `gorm:"type:text;not null" json:"payload"`
	Sent    string    `gorm:"type:text;default:'false';index:ix_notifications_user_id_sent,priority:2" json:"sent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Notification <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
