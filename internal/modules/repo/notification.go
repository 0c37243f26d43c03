package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	ListPending(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Notification, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListPending(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Notification, error) {
	var items []*model.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND sent = ?", userID, model.NotificationPending).
		Limit(clampLimit(limit)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
