package domain

import (
	"time"
)

const (
	// MinStageDurationDays is the smallest schedulable stage effort,
	// one eighth of a working day. Smaller values are clamped, not rejected.
	MinStageDurationDays = 0.125

	// DefaultStageDurationDays is used when a stage carries no duration at all.
	DefaultStageDurationDays = 1.0
)

// ProductionStage is one sequential step of a manufacturing plan.
// StartDate and CompletedDate are scheduler-owned except for the first
// stage's StartDate, which anchors the whole plan.
type ProductionStage struct {
	Name            string      `json:"name"`
	Status          StageStatus `json:"status"`
	StartDate       *time.Time  `json:"start_date,omitempty"`
	CompletedDate   *time.Time  `json:"completed_date,omitempty"`
	DurationDays    *float64    `json:"duration_days,omitempty"`
	UseBusinessDays bool        `json:"use_business_days"`
}

// EffectiveDuration resolves the stage effort used for scheduling:
// missing durations default to one day, anything below the minimum
// granularity is clamped up to it.
func (s *ProductionStage) EffectiveDuration() float64 {
	if s.DurationDays == nil {
		return DefaultStageDurationDays
	}
	if *s.DurationDays < MinStageDurationDays {
		return MinStageDurationDays
	}
	return *s.DurationDays
}

func (s *ProductionStage) IsScheduled() bool {
	return s.StartDate != nil && s.CompletedDate != nil
}

// ProductionPlan is an ordered list of stages for one order item.
// Stage order encodes a strict linear dependency chain: a stage cannot
// start before its predecessor finishes.
type ProductionPlan struct {
	PlanID      string            `json:"plan_id"`
	OrderNumber string            `json:"order_number"`
	ItemName    string            `json:"item_name"`
	Responsible string            `json:"responsible,omitempty"`
	Stages      []ProductionStage `json:"stages"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewProductionPlan(planID, orderNumber, itemName string) *ProductionPlan {
	return &ProductionPlan{
		PlanID:      planID,
		OrderNumber: orderNumber,
		ItemName:    itemName,
		Stages:      make([]ProductionStage, 0),
		UpdatedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy, so recomputation can produce a new plan
// value instead of mutating the input in place.
func (p *ProductionPlan) Clone() *ProductionPlan {
	out := *p
	out.Stages = make([]ProductionStage, len(p.Stages))
	for i, st := range p.Stages {
		cp := st
		if st.StartDate != nil {
			d := *st.StartDate
			cp.StartDate = &d
		}
		if st.CompletedDate != nil {
			d := *st.CompletedDate
			cp.CompletedDate = &d
		}
		if st.DurationDays != nil {
			d := *st.DurationDays
			cp.DurationDays = &d
		}
		out.Stages[i] = cp
	}
	return &out
}

// StageByName returns the index of the named stage, or -1.
func (p *ProductionPlan) StageByName(name string) int {
	for i := range p.Stages {
		if p.Stages[i].Name == name {
			return i
		}
	}
	return -1
}

// RemoveStage drops the named stage; the stage that followed it now
// directly follows the stage that preceded it.
func (p *ProductionPlan) RemoveStage(name string) bool {
	i := p.StageByName(name)
	if i < 0 {
		return false
	}
	p.Stages = append(p.Stages[:i], p.Stages[i+1:]...)
	return true
}
