package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasky/internal/model"
	"tasky/internal/repository"
)

// Clock returns the current time; tests pin it.
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	now      Clock
}

func NewTaskService(taskRepo *repository.TaskRepository, now Clock) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: orNow(now)}
}

// CreateTask stores a new visible Pending task.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", model.ErrValidation, priority)
	}

	now := s.now()
	task := model.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      model.StatusPending,
		Category:    category,
		Priority:    priority,
		CreatedAt:   model.NewTimestamp(now),
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns incomplete tasks, hidden ones only when includeHidden is set.
func (s *TaskService) List(ctx context.Context, includeHidden bool) ([]model.Task, error) {
	return s.taskRepo.List(ctx, includeHidden)
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.taskRepo.Get(ctx, taskID)
}

// CompleteTask marks a task Done and visible. Unknown ids are ignored.
func (s *TaskService) CompleteTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.MarkDone(ctx, taskID, s.now())
}

// StartTask records the first start of a task.
func (s *TaskService) StartTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.Start(ctx, taskID, s.now())
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.Delete(ctx, taskID)
}

// HideIncomplete clears incomplete tasks off the main view.
func (s *TaskService) HideIncomplete(ctx context.Context) (int64, error) {
	return s.taskRepo.HideAllIncomplete(ctx)
}

func (s *TaskService) UnhideAll(ctx context.Context) (int64, error) {
	return s.taskRepo.UnhideAll(ctx)
}

func (s *TaskService) HiddenCount(ctx context.Context) (int64, error) {
	return s.taskRepo.HiddenCount(ctx)
}

func (s *TaskService) IsHidden(ctx context.Context, taskID uint) (bool, error) {
	return s.taskRepo.IsHidden(ctx, taskID)
}
