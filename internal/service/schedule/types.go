package schedule

import (
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

// EditKind names the plan mutations that trigger a full recompute.
type EditKind string

const (
	EditSetAnchor       EditKind = "set_anchor"
	EditSetDuration     EditKind = "set_duration"
	EditSetBusinessDays EditKind = "set_business_days"
	EditSetStatus       EditKind = "set_status"
	EditAddStage        EditKind = "add_stage"
	EditRemoveStage     EditKind = "remove_stage"
)

// Edit is one user action against a plan. Exactly one payload field is
// meaningful per kind.
type Edit struct {
	Kind      EditKind `json:"kind"`
	StageName string   `json:"stage_name,omitempty"`

	AnchorDate      *time.Time          `json:"anchor_date,omitempty"`
	DurationDays    *float64            `json:"duration_days,omitempty"`
	UseBusinessDays *bool               `json:"use_business_days,omitempty"`
	Status          *domain.StageStatus `json:"status,omitempty"`
	Stage           *StageInput         `json:"stage,omitempty"`
	Position        *int                `json:"position,omitempty"`
}

// StageInput is the user-supplied shape of a stage.
type StageInput struct {
	Name            string     `json:"name"`
	Status          string     `json:"status,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DurationDays    *float64   `json:"duration_days,omitempty"`
	UseBusinessDays bool       `json:"use_business_days"`
}

type StageResult struct {
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	DurationDays    float64    `json:"duration_days"`
	UseBusinessDays bool       `json:"use_business_days"`
	Scheduled       bool       `json:"scheduled"`
}

type Response struct {
	PlanID           string        `json:"plan_id"`
	OrderNumber      string        `json:"order_number"`
	ItemName         string        `json:"item_name"`
	StageCount       int           `json:"stage_count"`
	ScheduledCount   int           `json:"scheduled_count"`
	UnscheduledCount int           `json:"unscheduled_count"`
	Stages           []StageResult `json:"stages"`
}
