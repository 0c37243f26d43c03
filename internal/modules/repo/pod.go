package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"gorm.io/gorm"
)

type PodRepo interface {
	Create(ctx context.Context, p *model.Pod) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pod, error)
	List(ctx context.Context, limit int) ([]*model.Pod, error)
}

type podRepo struct{ db *gorm.DB }

func NewPodRepo(db *gorm.DB) PodRepo {
	return &podRepo{db: db}
}

func (r *podRepo) Create(ctx context.Context, p *model.Pod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *podRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Pod, error) {
	var p model.Pod
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *podRepo) List(ctx context.Context, limit int) ([]*model.Pod, error) {
	var pods []*model.Pod
	if err := r.db.WithContext(ctx).Limit(clampLimit(limit)).Find(&pods).Error; err != nil {
		return nil, err
	}
	return pods, nil
}
