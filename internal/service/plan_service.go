package service

import (
	"context"
	"fmt"
	"strings"

	"tasky/internal/model"
	"tasky/internal/repository"
)

// PlanInput carries the mutable fields of a plan.
type PlanInput struct {
	Heading     string
	Description string
	FocusArea   string
	Priority    string
	TimeFrame   string
}

// PlanService manages weekly and monthly plans.
type PlanService struct {
	planRepo *repository.PlanRepository
	now      Clock
}

func NewPlanService(planRepo *repository.PlanRepository, now Clock) *PlanService {
	return &PlanService{planRepo: planRepo, now: orNow(now)}
}

func (s *PlanService) CreatePlan(ctx context.Context, input PlanInput) (*model.Plan, error) {
	input, err := normalizePlan(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	plan := model.Plan{
		Heading:     input.Heading,
		Description: input.Description,
		FocusArea:   input.FocusArea,
		Priority:    input.Priority,
		TimeFrame:   input.TimeFrame,
		Status:      model.PlanStatusActive,
		CreatedAt:   model.NewTimestamp(now),
		UpdatedAt:   model.NewTimestamp(now),
	}
	if err := s.planRepo.Create(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns every plan, or only those in timeFrame when it is set.
func (s *PlanService) ListPlans(ctx context.Context, timeFrame string) ([]model.Plan, error) {
	if timeFrame != "" && !model.ValidTimeFrame(timeFrame) {
		return nil, fmt.Errorf("%w: time frame must be %s or %s", model.ErrValidation, model.TimeFrameWeek, model.TimeFrameMonth)
	}
	return s.planRepo.List(ctx, timeFrame)
}

func (s *PlanService) GetPlan(ctx context.Context, planID uint) (*model.Plan, error) {
	return s.planRepo.Get(ctx, planID)
}

// UpdatePlan overwrites every mutable field and refreshes updated_at.
func (s *PlanService) UpdatePlan(ctx context.Context, planID uint, input PlanInput) error {
	input, err := normalizePlan(input)
	if err != nil {
		return err
	}
	now := s.now()
	return s.planRepo.Update(ctx, &model.Plan{
		ID:          planID,
		Heading:     input.Heading,
		Description: input.Description,
		FocusArea:   input.FocusArea,
		Priority:    input.Priority,
		TimeFrame:   input.TimeFrame,
		UpdatedAt:   model.NewTimestamp(now),
	})
}

func (s *PlanService) DeletePlan(ctx context.Context, planID uint) error {
	return s.planRepo.Delete(ctx, planID)
}

func normalizePlan(input PlanInput) (PlanInput, error) {
	input.Heading = strings.TrimSpace(input.Heading)
	if input.Heading == "" {
		return input, fmt.Errorf("%w: heading is required", model.ErrValidation)
	}
	if !model.ValidTimeFrame(input.TimeFrame) {
		return input, fmt.Errorf("%w: time frame must be %s or %s", model.ErrValidation, model.TimeFrameWeek, model.TimeFrameMonth)
	}
	input.Description = strings.TrimSpace(input.Description)
	if input.FocusArea = strings.TrimSpace(input.FocusArea); input.FocusArea == "" {
		input.FocusArea = model.DefaultCategory
	}
	if input.Priority = strings.TrimSpace(input.Priority); input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(input.Priority) {
		return input, fmt.Errorf("%w: unknown priority %q", model.ErrValidation, input.Priority)
	}
	return input, nil
}
