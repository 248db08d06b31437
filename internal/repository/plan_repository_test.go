package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasky/internal/model"
)

func mustCreatePlan(t *testing.T, repo *PlanRepository, heading, frame string) model.Plan {
	t.Helper()

	plan := model.Plan{
		Heading:   heading,
		FocusArea: model.DefaultCategory,
		Priority:  model.PriorityMedium,
		TimeFrame: frame,
		Status:    model.PlanStatusActive,
		CreatedAt: model.NewTimestamp(t0),
		UpdatedAt: model.NewTimestamp(t0),
	}
	if err := repo.Create(context.Background(), &plan); err != nil {
		t.Fatalf("failed to prepare plan: %v", err)
	}
	return plan
}

func TestPlanRepositoryListByTimeFrame(t *testing.T) {
	t.Parallel()

	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()

	w1 := mustCreatePlan(t, repo, "run 3x", model.TimeFrameWeek)
	m1 := mustCreatePlan(t, repo, "read a book", model.TimeFrameMonth)
	w2 := mustCreatePlan(t, repo, "inbox zero", model.TimeFrameWeek)

	tests := []struct {
		frame string
		want  []uint
	}{
		{frame: "", want: []uint{w2.ID, m1.ID, w1.ID}},
		{frame: model.TimeFrameWeek, want: []uint{w2.ID, w1.ID}},
		{frame: model.TimeFrameMonth, want: []uint{m1.ID}},
	}
	for _, tt := range tests {
		plans, err := repo.List(ctx, tt.frame)
		if err != nil {
			t.Fatalf("List(%q): %v", tt.frame, err)
		}
		got := make([]uint, 0, len(plans))
		for _, p := range plans {
			got = append(got, p.ID)
		}
		if !sameIDs(got, tt.want) {
			t.Fatalf("List(%q): expected %v, got %v", tt.frame, tt.want, got)
		}
	}
}

func TestPlanRepositoryUpdateAndDelete(t *testing.T) {
	t.Parallel()

	repo := NewPlanRepository(newTestDB(t))
	ctx := context.Background()
	plan := mustCreatePlan(t, repo, "draft", model.TimeFrameWeek)

	later := t0.Add(24 * time.Hour)
	plan.Heading = "final"
	plan.TimeFrame = model.TimeFrameMonth
	plan.UpdatedAt = model.NewTimestamp(later)
	if err := repo.Update(ctx, &plan); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, plan.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Heading != "final" || got.TimeFrame != model.TimeFrameMonth {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(later) {
		t.Fatalf("expected updated_at %v, got %v", later, got.UpdatedAt)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(t0) {
		t.Fatalf("created_at changed: %v", got.CreatedAt)
	}

	if err := repo.Delete(ctx, plan.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, plan.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
