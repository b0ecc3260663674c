package backlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
	"github.com/atelieflow/production-scheduling/internal/observability/metrics"
	"github.com/atelieflow/production-scheduling/internal/observability/tracing"
	"github.com/atelieflow/production-scheduling/internal/service/triage"
)

// Response is the triage view over the whole backlog. Unscheduled tasks
// carry no dates and belong to no bucket; they are reported alongside so
// callers can surface "to be defined" work.
type Response struct {
	ReferenceDay     time.Time     `json:"reference_day"`
	PlanCount        int           `json:"plan_count"`
	TaskCount        int           `json:"task_count"`
	OverdueCount     int           `json:"overdue_count"`
	TodayCount       int           `json:"today_count"`
	FutureCount      int           `json:"future_count"`
	UnscheduledCount int           `json:"unscheduled_count"`
	Overdue          []domain.Task `json:"overdue"`
	Today            []domain.Task `json:"today"`
	Future           []domain.Task `json:"future"`
	Unscheduled      []domain.Task `json:"unscheduled,omitempty"`
}

// Service flattens every stored plan into task projections and classifies
// them against a reference instant.
type Service struct {
	planRepo        domain.PlanRepository
	classifier      *triage.Classifier
	scheduleMetrics *metrics.ScheduleMetrics
	resultRecorder  domain.ScheduleResultRecorder
}

func NewService(
	planRepo domain.PlanRepository,
	classifier *triage.Classifier,
	scheduleMetrics *metrics.ScheduleMetrics,
	resultRecorder domain.ScheduleResultRecorder,
) *Service {
	return &Service{
		planRepo:        planRepo,
		classifier:      classifier,
		scheduleMetrics: scheduleMetrics,
		resultRecorder:  resultRecorder,
	}
}

// Triage classifies every incomplete stage across all stored plans into
// overdue/today/future against now's calendar day.
func (s *Service) Triage(ctx context.Context, now time.Time, runID string) (*Response, error) {
	day := domain.Day(now)
	ctx, span := tracing.StartTriageSpan(ctx, day)
	defer span.End()

	started := time.Now()

	var plans []*domain.ProductionPlan
	if s.planRepo != nil {
		var err error
		plans, err = s.planRepo.ListPlans(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to list plans for triage",
				slog.String("error", err.Error()),
			)
			tracing.RecordTriageResult(span, 0, 0, 0, 0, err)
			return nil, err
		}
	}

	tasks := CollectTasks(plans)

	slog.DebugContext(ctx, "collected backlog tasks",
		slog.Int("plan_count", len(plans)),
		slog.Int("task_count", len(tasks)),
	)

	result := s.classifier.Classify(tasks, day)

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordTriageDuration(ctx, time.Since(started))
		s.scheduleMetrics.RecordBucketDistribution(ctx, domain.BucketOverdue.String(), len(result.Overdue))
		s.scheduleMetrics.RecordBucketDistribution(ctx, domain.BucketToday.String(), len(result.Today))
		s.scheduleMetrics.RecordBucketDistribution(ctx, domain.BucketFuture.String(), len(result.Future))
	}
	tracing.RecordTriageResult(span,
		len(result.Overdue), len(result.Today), len(result.Future), len(result.Unscheduled), nil)

	if s.resultRecorder != nil {
		err := s.resultRecorder.RecordTriageResult(ctx, domain.TriageResultRecord{
			RunID:            runID,
			ReferenceDay:     day,
			OverdueCount:     len(result.Overdue),
			TodayCount:       len(result.Today),
			FutureCount:      len(result.Future),
			UnscheduledCount: len(result.Unscheduled),
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to record triage result",
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "backlog triage completed",
		slog.Time("reference_day", day),
		slog.Int("overdue_count", len(result.Overdue)),
		slog.Int("today_count", len(result.Today)),
		slog.Int("future_count", len(result.Future)),
		slog.Int("unscheduled_count", len(result.Unscheduled)),
	)

	return &Response{
		ReferenceDay:     day,
		PlanCount:        len(plans),
		TaskCount:        len(tasks),
		OverdueCount:     len(result.Overdue),
		TodayCount:       len(result.Today),
		FutureCount:      len(result.Future),
		UnscheduledCount: len(result.Unscheduled),
		Overdue:          result.Overdue,
		Today:            result.Today,
		Future:           result.Future,
		Unscheduled:      result.Unscheduled,
	}, nil
}

// CollectTasks projects every incomplete stage of every plan into a Task
// carrying its owning order metadata. The projections are transient; a
// stage's completion date doubles as the task due date.
func CollectTasks(plans []*domain.ProductionPlan) []domain.Task {
	tasks := make([]domain.Task, 0)
	for _, plan := range plans {
		if plan == nil {
			continue
		}
		for i := range plan.Stages {
			st := &plan.Stages[i]
			if st.Status.IsCompleted() {
				continue
			}
			tasks = append(tasks, domain.Task{
				PlanID:      plan.PlanID,
				OrderNumber: plan.OrderNumber,
				ItemName:    plan.ItemName,
				Responsible: plan.Responsible,
				StageName:   st.Name,
				Status:      st.Status,
				StartDate:   st.StartDate,
				DueDate:     st.CompletedDate,
			})
		}
	}
	return tasks
}
