package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasky/internal/model"
)

func TestPlanServiceValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tests := []struct {
		name  string
		input PlanInput
	}{
		{"empty heading", PlanInput{Heading: " ", TimeFrame: model.TimeFrameWeek}},
		{"missing time frame", PlanInput{Heading: "x"}},
		{"bad time frame", PlanInput{Heading: "x", TimeFrame: "Year"}},
		{"bad priority", PlanInput{Heading: "x", TimeFrame: model.TimeFrameMonth, Priority: "Someday"}},
	}
	for _, tt := range tests {
		if _, err := f.plans.CreatePlan(context.Background(), tt.input); !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
		}
	}
}

func TestPlanServiceLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	week, err := f.plans.CreatePlan(ctx, PlanInput{Heading: "Run 3x", TimeFrame: model.TimeFrameWeek})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if week.FocusArea != model.DefaultCategory || week.Priority != model.PriorityMedium || week.Status != model.PlanStatusActive {
		t.Fatalf("expected defaults, got %+v", week)
	}
	if _, err := f.plans.CreatePlan(ctx, PlanInput{Heading: "Read a book", TimeFrame: model.TimeFrameMonth}); err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	weekly, _ := f.plans.ListPlans(ctx, model.TimeFrameWeek)
	monthly, _ := f.plans.ListPlans(ctx, model.TimeFrameMonth)
	all, _ := f.plans.ListPlans(ctx, "")
	if len(weekly) != 1 || len(monthly) != 1 || len(all) != 2 {
		t.Fatalf("unexpected partition: week=%d month=%d all=%d", len(weekly), len(monthly), len(all))
	}

	f.clock.Advance(2 * time.Hour)
	err = f.plans.UpdatePlan(ctx, week.ID, PlanInput{
		Heading:   "Run 4x",
		FocusArea: "Health",
		Priority:  model.PriorityHigh,
		TimeFrame: model.TimeFrameMonth,
	})
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	got, err := f.plans.GetPlan(ctx, week.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.Heading != "Run 4x" || got.FocusArea != "Health" || got.TimeFrame != model.TimeFrameMonth {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected updated_at refreshed, got %v", got.UpdatedAt)
	}

	if err := f.plans.UpdatePlan(ctx, 999, PlanInput{Heading: "ghost", TimeFrame: model.TimeFrameWeek}); err != nil {
		t.Fatalf("UpdatePlan on unknown id: %v", err)
	}
	if err := f.plans.DeletePlan(ctx, week.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	all, _ = f.plans.ListPlans(ctx, "")
	if len(all) != 1 {
		t.Fatalf("expected 1 plan left, got %d", len(all))
	}
}

func TestPlanServiceListRejectsUnknownFrame(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.plans.ListPlans(context.Background(), "Year"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
