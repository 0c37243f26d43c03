package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"type:text;not null;uniqueIndex:uq_users_email" json:"email"`
	DisplayName *string   `gorm:"type:text" json:"display_name"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url"`
	Role        string    `gorm:"type:text;not null;default:'member'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
