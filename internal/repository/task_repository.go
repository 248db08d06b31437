package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tasky/internal/model"
)

// TaskRepository handles CRUD and visibility bookkeeping for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts task as given; callers fill in defaults and timestamps.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return storageErr("create task", err)
	}
	return nil
}

// List returns incomplete tasks newest first. Hidden tasks are included only
// when includeHidden is set.
func (r *TaskRepository) List(ctx context.Context, includeHidden bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("status <> ?", model.StatusDone)
	if !includeHidden {
		q = q.Where("hidden = ?", false)
	}
	var tasks []model.Task
	if err := q.Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, storageErr("list tasks", err)
	}
	return tasks, nil
}

// ListAll returns every row regardless of status or visibility, newest first.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, storageErr("list all tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrNotFound
	default:
		return nil, storageErr("get task", err)
	}
}

// MarkDone completes the task and makes it visible again. completed_at is
// overwritten on every call.
func (r *TaskRepository) MarkDone(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.StatusDone,
			"completed_at": model.NewTimestamp(at),
			"hidden":       false,
		}).Error
	if err != nil {
		return storageErr("mark task done", err)
	}
	return nil
}

// Start records the first start time; later calls leave it untouched.
func (r *TaskRepository) Start(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND started_at IS NULL", id).
		Update("started_at", model.NewTimestamp(at)).Error
	if err != nil {
		return storageErr("start task", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return storageErr("delete task", err)
	}
	return nil
}

// HideAllIncomplete hides every visible incomplete task and reports how many
// rows changed.
func (r *TaskRepository) HideAllIncomplete(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status <> ? AND hidden = ?", model.StatusDone, false).
		Update("hidden", true)
	if res.Error != nil {
		return 0, storageErr("hide incomplete tasks", res.Error)
	}
	return res.RowsAffected, nil
}

// UnhideAll clears the hidden flag on every row, whatever its status.
func (r *TaskRepository) UnhideAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Task{}).
		Update("hidden", false)
	if res.Error != nil {
		return 0, storageErr("unhide tasks", res.Error)
	}
	return res.RowsAffected, nil
}

// HiddenCount counts hidden tasks that are still incomplete.
func (r *TaskRepository) HiddenCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("hidden = ? AND status <> ?", true, model.StatusDone).
		Count(&n).Error
	if err != nil {
		return 0, storageErr("count hidden tasks", err)
	}
	return n, nil
}

func (r *TaskRepository) IsHidden(ctx context.Context, id uint) (bool, error) {
	task, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return task.Hidden, nil
}
