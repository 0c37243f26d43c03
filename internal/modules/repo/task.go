package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/leogretz2/bp-planner1/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskFilter holds the optional list filters. Nil or empty fields are not applied.
type TaskFilter struct {
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
	Statuses   []string
}

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, f TaskFilter, limit int) ([]*model.Task, error)
	// UpdateStatus returns nil when no task has the given id.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error)

	CreateAssignment(ctx context.Context, a *model.TaskAssignment) error
	ListAssignments(ctx context.Context, taskID uuid.UUID, limit int) ([]*model.TaskAssignment, error)

	// AddTag reports whether a new pair was inserted.
	AddTag(ctx context.Context, taskID, tagID uuid.UUID) (bool, error)
	RemoveTag(ctx context.Context, taskID, tagID uuid.UUID) (bool, error)
	ListTags(ctx context.Context, taskID uuid.UUID) ([]*model.Tag, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, f TaskFilter, limit int) ([]*model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})

	if f.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *f.ProjectID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("tasks.status IN ?", f.Statuses)
	}
	if f.AssigneeID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.task_id = tasks.id AND ta.user_id = ?)",
			*f.AssigneeID,
		)
	}

	var tasks []*model.Task
	if err := q.Limit(clampLimit(limit)).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error) {
	// UPDATE ... RETURNING keeps the write and the read in one statement.
	var updated []model.Task
	err := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, nil
	}
	return &updated[0], nil
}

func (r *taskRepo) CreateAssignment(ctx context.Context, a *model.TaskAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *taskRepo) ListAssignments(ctx context.Context, taskID uuid.UUID, limit int) ([]*model.TaskAssignment, error) {
	var items []*model.TaskAssignment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Limit(clampLimit(limit)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *taskRepo) AddTag(ctx context.Context, taskID, tagID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.TaskTag{TaskID: taskID, TagID: tagID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *taskRepo) RemoveTag(ctx context.Context, taskID, tagID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("task_id = ? AND tag_id = ?", taskID, tagID).
		Delete(&model.TaskTag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *taskRepo) ListTags(ctx context.Context, taskID uuid.UUID) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.WithContext(ctx).
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", taskID).
		Limit(MaxListRows).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
