package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tasky/internal/model"
)

// PlanRepository handles CRUD for weekly and monthly plans.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return storageErr("create plan", err)
	}
	return nil
}

// List returns plans newest first, restricted to timeFrame unless it is empty.
func (r *PlanRepository) List(ctx context.Context, timeFrame string) ([]model.Plan, error) {
	q := r.db.WithContext(ctx)
	if timeFrame != "" {
		q = q.Where("time_frame = ?", timeFrame)
	}
	var plans []model.Plan
	if err := q.Order("id DESC").Find(&plans).Error; err != nil {
		return nil, storageErr("list plans", err)
	}
	return plans, nil
}

func (r *PlanRepository) Get(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.WithContext(ctx).First(&plan, id).Error
	switch {
	case err == nil:
		return &plan, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrNotFound
	default:
		return nil, storageErr("get plan", err)
	}
}

// Update overwrites the mutable columns of the plan with plan.ID. Unknown ids
// are left alone.
func (r *PlanRepository) Update(ctx context.Context, plan *model.Plan) error {
	err := r.db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"heading":     plan.Heading,
			"description": plan.Description,
			"focus_area":  plan.FocusArea,
			"priority":    plan.Priority,
			"time_frame":  plan.TimeFrame,
			"updated_at":  plan.UpdatedAt,
		}).Error
	if err != nil {
		return storageErr("update plan", err)
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Plan{}).Error; err != nil {
		return storageErr("delete plan", err)
	}
	return nil
}
