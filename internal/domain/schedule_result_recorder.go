package domain

import (
	"context"
	"time"
)

// RecomputeResultRecord captures the outcome of one full-plan recompute.
type RecomputeResultRecord struct {
	RunID            string
	PlanID           string
	OrderNumber      string
	StageCount       int
	ScheduledCount   int
	UnscheduledCount int
	AnchorDate       *time.Time
	RecomputedAt     time.Time
}

// TriageResultRecord captures one backlog classification pass.
type TriageResultRecord struct {
	RunID            string
	ReferenceDay     time.Time
	OverdueCount     int
	TodayCount       int
	FutureCount      int
	UnscheduledCount int
}

// ScheduleResultRecorder ships scheduling outcomes to an external
// time-series store for dashboards; a noop implementation is used when
// recording is not configured.
type ScheduleResultRecorder interface {
	RecordRecomputeResults(ctx context.Context, records []RecomputeResultRecord) error
	RecordTriageResult(ctx context.Context, record TriageResultRecord) error
	Close() error
}
