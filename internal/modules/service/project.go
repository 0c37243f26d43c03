package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
)

type ProjectService interface {
	List(ctx context.Context) ([]*model.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

type projectService struct {
	r repo.ProjectRepo
}

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

type CreateProjectInput struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	PodID       *uuid.UUID `json:"pod_id"`
}

func (s *projectService) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.r.List(ctx, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	return projects, nil
}

// Create does not look up PodID; a dangling pod reference is only rejected
// if the store enforces the foreign key.
func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("project name is required")
	}
	p := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		PodID:       in.PodID,
		Status:      model.ProjectStatusActive,
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, storeErr("create project", err)
	}
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, err := s.r.GetByID(ctx, id)
	return notFoundAsNil(p, err, "get project")
}
