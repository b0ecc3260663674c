package domain

import (
	"time"
)

// Task is a read-only projection of one incomplete stage plus its owning
// order/item identifiers. Tasks are rebuilt on every triage pass and are
// never persisted independently of the plan they come from.
type Task struct {
	PlanID      string      `json:"plan_id"`
	OrderNumber string      `json:"order_number"`
	ItemName    string      `json:"item_name"`
	Responsible string      `json:"responsible,omitempty"`
	StageName   string      `json:"stage_name"`
	Status      StageStatus `json:"status"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	IsOverdue   bool        `json:"is_overdue"`
}

// IsUnscheduled reports whether the task carries no usable date at all.
func (t *Task) IsUnscheduled() bool {
	return t.StartDate == nil && t.DueDate == nil
}

// Bucket is the triage classification of an outstanding task.
type Bucket string

const (
	BucketOverdue Bucket = "overdue"
	BucketToday   Bucket = "today"
	BucketFuture  Bucket = "future"
)

func (b Bucket) String() string {
	return string(b)
}
