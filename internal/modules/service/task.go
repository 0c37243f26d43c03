package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TaskService interface {
	List(ctx context.Context, in ListTasksInput) ([]*model.Task, error)
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	AssignTask(ctx context.Context, in AssignTaskInput) (*model.TaskAssignment, error)
	ListAssignments(ctx context.Context, taskID uuid.UUID) ([]*model.TaskAssignment, error)
	// UpdateStatus returns nil, nil when no task matches.
	UpdateStatus(ctx context.Context, in UpdateTaskStatusInput) (*model.Task, error)
	AddTag(ctx context.Context, in TaskTagInput) (*TaskTagOutput, error)
	RemoveTag(ctx context.Context, in TaskTagInput) (*TaskTagOutput, error)
	ListTags(ctx context.Context, taskID uuid.UUID) ([]*model.Tag, error)
}

type taskService struct {
	r   repo.TaskRepo
	log *zap.Logger
}

func NewTaskService(r repo.TaskRepo, log *zap.Logger) TaskService {
	return &taskService{r: r, log: log}
}

type ListTasksInput struct {
	ProjectID  *uuid.UUID `json:"project_id"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Status     []string   `json:"status"`
}

type CreateTaskInput struct {
	ProjectID      uuid.UUID        `json:"project_id"`
	Title          string           `json:"title"`
	Description    *string          `json:"description"`
	StartDate      *model.Date      `json:"start_date"`
	DueDate        *model.Date      `json:"due_date"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
}

type AssignTaskInput struct {
	TaskID         uuid.UUID        `json:"task_id"`
	UserID         uuid.UUID        `json:"user_id"`
	Role           *string          `json:"role"`
	PlannedDay     *model.Date      `json:"planned_day"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours"`
}

type UpdateTaskStatusInput struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

type TaskTagInput struct {
	TaskID uuid.UUID `json:"task_id"`
	TagID  uuid.UUID `json:"tag_id"`
}

type TaskTagOutput struct {
	TaskID  uuid.UUID `json:"task_id"`
	TagID   uuid.UUID `json:"tag_id"`
	Changed bool      `json:"changed"`
}

func (s *taskService) List(ctx context.Context, in ListTasksInput) ([]*model.Task, error) {
	tasks, err := s.r.List(ctx, repo.TaskFilter{
		ProjectID:  in.ProjectID,
		AssigneeID: in.AssigneeID,
		Statuses:   in.Status,
	}, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	return tasks, nil
}

// Create leaves created_by unset until an authenticated caller is available.
func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if in.ProjectID == uuid.Nil {
		return nil, invalid("project id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("task title is required")
	}

	t := &model.Task{
		ProjectID:      &in.ProjectID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         model.TaskStatusTodo,
		Priority:       model.DefaultTaskPriority,
		StartDate:      in.StartDate,
		DueDate:        in.DueDate,
		EstimatedHours: hours(in.EstimatedHours),
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, storeErr("create task", err)
	}
	return t, nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	t, err := s.r.GetByID(ctx, id)
	return notFoundAsNil(t, err, "get task")
}

// AssignTask always inserts; the same (task, user) pair may hold several assignments.
func (s *taskService) AssignTask(ctx context.Context, in AssignTaskInput) (*model.TaskAssignment, error) {
	if in.TaskID == uuid.Nil || in.UserID == uuid.Nil {
		return nil, invalid("task id and user id are required")
	}

	a := &model.TaskAssignment{
		TaskID:         in.TaskID,
		UserID:         in.UserID,
		Role:           model.AssignmentRoleAssignee,
		PlannedDay:     in.PlannedDay,
		EstimatedHours: hours(in.EstimatedHours),
	}
	if in.Role != nil && *in.Role != "" {
		a.Role = *in.Role
	}

	if err := s.r.CreateAssignment(ctx, a); err != nil {
		return nil, storeErr("assign task", err)
	}
	return a, nil
}

func (s *taskService) ListAssignments(ctx context.Context, taskID uuid.UUID) ([]*model.TaskAssignment, error) {
	items, err := s.r.ListAssignments(ctx, taskID, repo.MaxListRows)
	if err != nil {
		return nil, storeErr("list assignments", err)
	}
	return items, nil
}

// UpdateStatus stores any status string; the known values are a convention only.
func (s *taskService) UpdateStatus(ctx context.Context, in UpdateTaskStatusInput) (*model.Task, error) {
	t, err := s.r.UpdateStatus(ctx, in.TaskID, in.Status)
	if err != nil {
		return nil, storeErr("update task status", err)
	}
	if t == nil {
		s.log.Info("status update matched no task", zap.String("task_id", in.TaskID.String()))
	}
	return t, nil
}

func (s *taskService) AddTag(ctx context.Context, in TaskTagInput) (*TaskTagOutput, error) {
	added, err := s.r.AddTag(ctx, in.TaskID, in.TagID)
	if err != nil {
		return nil, storeErr("add task tag", err)
	}
	return &TaskTagOutput{TaskID: in.TaskID, TagID: in.TagID, Changed: added}, nil
}

func (s *taskService) RemoveTag(ctx context.Context, in TaskTagInput) (*TaskTagOutput, error) {
	removed, err := s.r.RemoveTag(ctx, in.TaskID, in.TagID)
	if err != nil {
		return nil, storeErr("remove task tag", err)
	}
	return &TaskTagOutput{TaskID: in.TaskID, TagID: in.TagID, Changed: removed}, nil
}

func (s *taskService) ListTags(ctx context.Context, taskID uuid.UUID) ([]*model.Tag, error) {
	tags, err := s.r.ListTags(ctx, taskID)
	if err != nil {
		return nil, storeErr("list task tags", err)
	}
	return tags, nil
}

// hours converts optional numeric input into the decimal column form.
func hours(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
