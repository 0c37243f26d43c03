package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
)

type PodService interface {
	List(ctx context.Context) ([]*model.Pod, error)
	Create(ctx context.Context, in CreatePodInput) (*model.Pod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pod, error)
}

type podService struct {
	r repo.PodRepo
}

func NewPodService(r repo.PodRepo) PodService {
	return &podService{r: r}
}

type CreatePodInput struct {
	Name      string     `json:"name"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

func (s *podService) List(ctx context.Context) ([]*model.Pod, error) {
	pods, err := s.r.List(ctx, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list pods", err)
	}
	return pods, nil
}

func (s *podService) Create(ctx context.Context, in CreatePodInput) (*model.Pod, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("pod name is required")
	}
	p := &model.Pod{Name: in.Name, ManagerID: in.ManagerID}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, storeErr("create pod", err)
	}
	return p, nil
}

func (s *podService) GetByID(ctx context.Context, id uuid.UUID) (*model.Pod, error) {
	p, err := s.r.GetByID(ctx, id)
	return notFoundAsNil(p, err, "get pod")
}
