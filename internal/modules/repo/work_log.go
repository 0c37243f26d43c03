package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"gorm.io/gorm"
)

type WorkLogFilter struct {
	TaskID *uuid.UUID
	UserID *uuid.UUID
}

type WorkLogRepo interface {
	Create(ctx context.Context, w *model.WorkLog) error
	List(ctx context.Context, f WorkLogFilter, limit int) ([]*model.WorkLog, error)
}

type workLogRepo struct{ db *gorm.DB }

func NewWorkLogRepo(db *gorm.DB) WorkLogRepo {
	return &workLogRepo{db: db}
}

func (r *workLogRepo) Create(ctx context.Context, w *model.WorkLog) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workLogRepo) List(ctx context.Context, f WorkLogFilter, limit int) ([]*model.WorkLog, error) {
	q := r.db.WithContext(ctx).Model(&model.WorkLog{})
	if f.TaskID != nil {
		q = q.Where("task_id = ?", *f.TaskID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var logs []*model.WorkLog
	if err := q.Limit(clampLimit(limit)).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
