package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
)

const DefaultUserRole = "member"

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	r repo.UserRepo
}

func NewUserService(r repo.UserRepo) UserService {
	return &userService{r: r}
}

type CreateUserInput struct {
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.r.List(ctx, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, invalid("email is required")
	}

	u := &model.User{
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Role:        DefaultUserRole,
	}
	if in.Role != nil {
		u.Role = *in.Role
	}

	if err := s.r.Create(ctx, u); err != nil {
		return nil, storeErr("create user", err)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.r.GetByID(ctx, id)
	return notFoundAsNil(u, err, "get user")
}
