package service

import (
	"context"
	"time"

	"tasky/internal/analytics"
	"tasky/internal/repository"
)

// StatsService recomputes analytics from the full task table on every call.
type StatsService struct {
	taskRepo *repository.TaskRepository
	now      Clock
	lookback int
}

func NewStatsService(taskRepo *repository.TaskRepository, now Clock, streakLookback int) *StatsService {
	if streakLookback <= 0 {
		streakLookback = analytics.DefaultStreakLookback
	}
	return &StatsService{taskRepo: taskRepo, now: orNow(now), lookback: streakLookback}
}

func (s *StatsService) Overall(ctx context.Context) (analytics.Overall, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return analytics.Overall{}, err
	}
	return analytics.Stats(tasks), nil
}

func (s *StatsService) Daily(ctx context.Context, day time.Time) (analytics.Rollup, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return analytics.Rollup{}, err
	}
	return analytics.Daily(tasks, day), nil
}

func (s *StatsService) Weekly(ctx context.Context, anchor time.Time) (analytics.Weekly, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return analytics.Weekly{}, err
	}
	return analytics.WeeklyStats(tasks, anchor), nil
}

func (s *StatsService) Monthly(ctx context.Context, anchor time.Time) (analytics.Monthly, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return analytics.Monthly{}, err
	}
	return analytics.MonthlyStats(tasks, anchor), nil
}

// Streak counts consecutive completion days ending today.
func (s *StatsService) Streak(ctx context.Context) (int, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return analytics.Streak(tasks, s.now(), s.lookback), nil
}

// Dashboard computes every figure at once, anchored at at (or now when zero).
func (s *StatsService) Dashboard(ctx context.Context, at time.Time) (analytics.Dashboard, error) {
	if at.IsZero() {
		at = s.now()
	}
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.Build(tasks, at, s.lookback), nil
}
