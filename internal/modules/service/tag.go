package service

import (
	"context"
	"strings"

	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
)

type TagService interface {
	List(ctx context.Context) ([]*model.Tag, error)
	Create(ctx context.Context, in CreateTagInput) (*model.Tag, error)
}

type tagService struct {
	r repo.TagRepo
}

func NewTagService(r repo.TagRepo) TagService {
	return &tagService{r: r}
}

type CreateTagInput struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func (s *tagService) List(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.r.List(ctx, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list tags", err)
	}
	return tags, nil
}

func (s *tagService) Create(ctx context.Context, in CreateTagInput) (*model.Tag, error) {
	if strings.TrimSpace(in.Slug) == "" || strings.TrimSpace(in.Label) == "" {
		return nil, invalid("tag slug and label are required")
	}
	t := &model.Tag{Slug: in.Slug, Label: in.Label}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, storeErr("create tag", err)
	}
	return t, nil
}
