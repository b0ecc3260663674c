package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

const planKeyPrefix = "schedule:plan:"

type stageRecord struct {
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	DurationDays    *float64   `json:"duration_days,omitempty"`
	UseBusinessDays bool       `json:"use_business_days"`
}

type planRecord struct {
	PlanID      string        `json:"plan_id"`
	OrderNumber string        `json:"order_number"`
	ItemName    string        `json:"item_name"`
	Responsible string        `json:"responsible,omitempty"`
	Stages      []stageRecord `json:"stages"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type planRepository struct {
	client *redis.Client
}

func NewPlanRepository(client *redis.Client) domain.PlanRepository {
	return &planRepository{
		client: client,
	}
}

func (r *planRepository) SavePlan(ctx context.Context, plan *domain.ProductionPlan) error {
	if plan == nil || plan.PlanID == "" {
		return ErrInvalidPlanData
	}

	record := planToRecord(plan)

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidPlanData
	}

	return r.client.Set(ctx, planKeyPrefix+plan.PlanID, data, 0).Err()
}

func (r *planRepository) GetPlan(ctx context.Context, planID string) (*domain.ProductionPlan, error) {
	data, err := r.client.Get(ctx, planKeyPrefix+planID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	var record planRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidPlanData
	}

	return recordToPlan(&record), nil
}

func (r *planRepository) ListPlans(ctx context.Context) ([]*domain.ProductionPlan, error) {
	plans := make([]*domain.ProductionPlan, 0)

	iter := r.client.Scan(ctx, 0, planKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		planID := iter.Val()[len(planKeyPrefix):]

		plan, err := r.GetPlan(ctx, planID)
		if err != nil {
			if errors.Is(err, domain.ErrPlanNotFound) {
				continue
			}
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) DeletePlan(ctx context.Context, planID string) error {
	return r.client.Del(ctx, planKeyPrefix+planID).Err()
}

func planToRecord(plan *domain.ProductionPlan) *planRecord {
	stages := make([]stageRecord, 0, len(plan.Stages))
	for _, st := range plan.Stages {
		stages = append(stages, stageRecord{
			Name:            st.Name,
			Status:          st.Status.String(),
			StartDate:       st.StartDate,
			CompletedDate:   st.CompletedDate,
			DurationDays:    st.DurationDays,
			UseBusinessDays: st.UseBusinessDays,
		})
	}

	return &planRecord{
		PlanID:      plan.PlanID,
		OrderNumber: plan.OrderNumber,
		ItemName:    plan.ItemName,
		Responsible: plan.Responsible,
		Stages:      stages,
		UpdatedAt:   plan.UpdatedAt,
	}
}

func recordToPlan(record *planRecord) *domain.ProductionPlan {
	stages := make([]domain.ProductionStage, 0, len(record.Stages))
	for _, st := range record.Stages {
		stages = append(stages, domain.ProductionStage{
			Name:            st.Name,
			Status:          domain.StageStatus(st.Status),
			StartDate:       st.StartDate,
			CompletedDate:   st.CompletedDate,
			DurationDays:    st.DurationDays,
			UseBusinessDays: st.UseBusinessDays,
		})
	}

	return &domain.ProductionPlan{
		PlanID:      record.PlanID,
		OrderNumber: record.OrderNumber,
		ItemName:    record.ItemName,
		Responsible: record.Responsible,
		Stages:      stages,
		UpdatedAt:   record.UpdatedAt,
	}
}
