package repo

import (
	"context"

	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"gorm.io/gorm"
)

type TagRepo interface {
	Create(ctx context.Context, t *model.Tag) error
	List(ctx context.Context, limit int) ([]*model.Tag, error)
}

type tagRepo struct{ db *gorm.DB }

func NewTagRepo(db *gorm.DB) TagRepo {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tagRepo) List(ctx context.Context, limit int) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.WithContext(ctx).Limit(clampLimit(limit)).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
