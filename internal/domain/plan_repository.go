package domain

import "context"

// PlanRepository persists production plans keyed by plan ID.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *ProductionPlan) error
	GetPlan(ctx context.Context, planID string) (*ProductionPlan, error)
	ListPlans(ctx context.Context) ([]*ProductionPlan, error)
	DeletePlan(ctx context.Context, planID string) error
}

// HolidayRepository stores injected per-year holiday calendars.
type HolidayRepository interface {
	SaveCalendar(ctx context.Context, cal *HolidayCalendar) error
	GetCalendar(ctx context.Context, year int) (*HolidayCalendar, error)
}
