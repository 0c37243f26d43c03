package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
	"github.com/shopspring/decimal"
)

type WorkLogService interface {
	Create(ctx context.Context, in CreateWorkLogInput) (*model.WorkLog, error)
	List(ctx context.Context, in ListWorkLogsInput) ([]*model.WorkLog, error)
}

type workLogService struct {
	r repo.WorkLogRepo
}

func NewWorkLogService(r repo.WorkLogRepo) WorkLogService {
	return &workLogService{r: r}
}

type CreateWorkLogInput struct {
	UserID     uuid.UUID        `json:"user_id"`
	TaskID     uuid.UUID        `json:"task_id"`
	StartedAt  *time.Time       `json:"started_at"`
	EndedAt    *time.Time       `json:"ended_at"`
	DeltaHours *decimal.Decimal `json:"delta_hours"`
	Notes      *string          `json:"notes"`
}

type ListWorkLogsInput struct {
	TaskID *uuid.UUID `json:"task_id"`
	UserID *uuid.UUID `json:"user_id"`
}

func (s *workLogService) Create(ctx context.Context, in CreateWorkLogInput) (*model.WorkLog, error) {
	if in.UserID == uuid.Nil || in.TaskID == uuid.Nil {
		return nil, invalid("user id and task id are required")
	}
	if in.StartedAt != nil && in.EndedAt != nil && in.EndedAt.Before(*in.StartedAt) {
		return nil, invalid("ended_at precedes started_at")
	}

	w := &model.WorkLog{
		UserID:     in.UserID,
		TaskID:     in.TaskID,
		StartedAt:  in.StartedAt,
		EndedAt:    in.EndedAt,
		DeltaHours: hours(in.DeltaHours),
		Notes:      in.Notes,
	}
	if err := s.r.Create(ctx, w); err != nil {
		return nil, storeErr("create work log", err)
	}
	return w, nil
}

func (s *workLogService) List(ctx context.Context, in ListWorkLogsInput) ([]*model.WorkLog, error) {
	logs, err := s.r.List(ctx, repo.WorkLogFilter{TaskID: in.TaskID, UserID: in.UserID}, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list work logs", err)
	}
	return logs, nil
}
