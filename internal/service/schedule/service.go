package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
	"github.com/atelieflow/production-scheduling/internal/observability/metrics"
	"github.com/atelieflow/production-scheduling/internal/observability/tracing"
	"github.com/atelieflow/production-scheduling/internal/service/calendar"
	"github.com/atelieflow/production-scheduling/internal/service/cascade"
)

var (
	ErrUnknownEditKind = errors.New("unknown edit kind")
	ErrMissingPayload  = errors.New("edit payload missing for kind")
	ErrDuplicateStage  = errors.New("stage name already in plan")
)

// Service owns the edit-then-recompute cycle: it loads the stored plan,
// applies one edit, recomputes every stage date through the cascade
// engine, and persists the result. Recomputation is always full-plan, so
// the stored dates are a pure function of the plan's inputs.
type Service struct {
	planRepo        domain.PlanRepository
	calendars       *calendar.Provider
	scheduleMetrics *metrics.ScheduleMetrics
	resultRecorder  domain.ScheduleResultRecorder
	horizonYears    int
}

func NewService(
	planRepo domain.PlanRepository,
	calendars *calendar.Provider,
	scheduleMetrics *metrics.ScheduleMetrics,
	resultRecorder domain.ScheduleResultRecorder,
	horizonYears int,
) *Service {
	if horizonYears < 1 {
		horizonYears = 1
	}
	return &Service{
		planRepo:        planRepo,
		calendars:       calendars,
		scheduleMetrics: scheduleMetrics,
		resultRecorder:  resultRecorder,
		horizonYears:    horizonYears,
	}
}

// UpsertPlan stores the given plan after a full recompute.
func (s *Service) UpsertPlan(ctx context.Context, plan *domain.ProductionPlan, runID string) (*Response, error) {
	return s.recompute(ctx, plan, "upsert", runID)
}

func (s *Service) GetPlan(ctx context.Context, planID string) (*domain.ProductionPlan, error) {
	if s.planRepo == nil {
		return nil, domain.ErrPlanNotFound
	}
	return s.planRepo.GetPlan(ctx, planID)
}

func (s *Service) DeletePlan(ctx context.Context, planID string) error {
	if s.planRepo == nil {
		return nil
	}
	return s.planRepo.DeletePlan(ctx, planID)
}

// ApplyEdit loads the plan, applies one edit event, and recomputes the
// whole plan from the anchor stage forward.
func (s *Service) ApplyEdit(ctx context.Context, planID string, edit Edit, runID string) (*Response, error) {
	if s.planRepo == nil {
		return nil, domain.ErrPlanNotFound
	}

	plan, err := s.planRepo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if err := applyEdit(plan, edit); err != nil {
		return nil, err
	}

	return s.recompute(ctx, plan, string(edit.Kind), runID)
}

func (s *Service) recompute(ctx context.Context, plan *domain.ProductionPlan, trigger, runID string) (*Response, error) {
	ctx, span := tracing.StartRecomputeSpan(ctx, plan.PlanID, trigger)
	defer span.End()

	started := time.Now()
	engine := cascade.NewEngine(s.calendarFor(ctx, plan))
	computed := engine.Recompute(plan)
	computed.UpdatedAt = time.Now().UTC()

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordRecomputeDuration(ctx, time.Since(started))
		s.scheduleMetrics.RecordPlanRecomputed(ctx, trigger)
	}

	resp := buildResponse(computed)

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordStageCounts(ctx, resp.ScheduledCount, resp.UnscheduledCount)
	}
	tracing.RecordRecomputeResult(span, resp.StageCount, resp.ScheduledCount, resp.UnscheduledCount, nil)

	if s.planRepo != nil {
		if err := s.planRepo.SavePlan(ctx, computed); err != nil {
			slog.ErrorContext(ctx, "failed to save recomputed plan",
				slog.String("plan_id", computed.PlanID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	if s.resultRecorder != nil {
		var anchor *time.Time
		if len(computed.Stages) > 0 {
			anchor = computed.Stages[0].StartDate
		}
		record := domain.RecomputeResultRecord{
			RunID:            runID,
			PlanID:           computed.PlanID,
			OrderNumber:      computed.OrderNumber,
			StageCount:       resp.StageCount,
			ScheduledCount:   resp.ScheduledCount,
			UnscheduledCount: resp.UnscheduledCount,
			AnchorDate:       anchor,
			RecomputedAt:     computed.UpdatedAt,
		}
		if err := s.resultRecorder.RecordRecomputeResults(ctx, []domain.RecomputeResultRecord{record}); err != nil {
			slog.WarnContext(ctx, "failed to record recompute result",
				slog.String("plan_id", computed.PlanID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "plan recomputed",
		slog.String("plan_id", computed.PlanID),
		slog.String("trigger", trigger),
		slog.Int("stage_count", resp.StageCount),
		slog.Int("scheduled_count", resp.ScheduledCount),
		slog.Int("unscheduled_count", resp.UnscheduledCount),
	)

	return resp, nil
}

// calendarFor builds the business calendar spanning the plan's scheduling
// horizon. A plan without an anchor gets an empty calendar; it will come
// out entirely unscheduled anyway.
func (s *Service) calendarFor(ctx context.Context, plan *domain.ProductionPlan) *calendar.Calendar {
	if s.calendars == nil || len(plan.Stages) == 0 || plan.Stages[0].StartDate == nil {
		return calendar.New(nil)
	}
	firstYear := plan.Stages[0].StartDate.UTC().Year()
	return s.calendars.ForYears(ctx, firstYear, firstYear+s.horizonYears)
}

func applyEdit(plan *domain.ProductionPlan, edit Edit) error {
	switch edit.Kind {
	case EditSetAnchor:
		if len(plan.Stages) == 0 {
			return domain.ErrStageNotFound
		}
		plan.Stages[0].StartDate = edit.AnchorDate

	case EditSetDuration:
		i := plan.StageByName(edit.StageName)
		if i < 0 {
			return domain.ErrStageNotFound
		}
		if edit.DurationDays == nil {
			return ErrMissingPayload
		}
		plan.Stages[i].DurationDays = edit.DurationDays

	case EditSetBusinessDays:
		i := plan.StageByName(edit.StageName)
		if i < 0 {
			return domain.ErrStageNotFound
		}
		if edit.UseBusinessDays == nil {
			return ErrMissingPayload
		}
		plan.Stages[i].UseBusinessDays = *edit.UseBusinessDays

	case EditSetStatus:
		i := plan.StageByName(edit.StageName)
		if i < 0 {
			return domain.ErrStageNotFound
		}
		if edit.Status == nil || !edit.Status.Valid() {
			return domain.ErrInvalidStatus
		}
		plan.Stages[i].Status = *edit.Status

	case EditAddStage:
		if edit.Stage == nil {
			return ErrMissingPayload
		}
		if plan.StageByName(edit.Stage.Name) >= 0 {
			return ErrDuplicateStage
		}
		stage := stageFromInput(*edit.Stage)
		pos := len(plan.Stages)
		if edit.Position != nil && *edit.Position >= 0 && *edit.Position < len(plan.Stages) {
			pos = *edit.Position
		}
		plan.Stages = append(plan.Stages, domain.ProductionStage{})
		copy(plan.Stages[pos+1:], plan.Stages[pos:])
		plan.Stages[pos] = stage

	case EditRemoveStage:
		if !plan.RemoveStage(edit.StageName) {
			return domain.ErrStageNotFound
		}

	default:
		return ErrUnknownEditKind
	}

	return nil
}

func stageFromInput(in StageInput) domain.ProductionStage {
	status := domain.StageStatus(in.Status)
	if !status.Valid() {
		status = domain.StagePending
	}
	return domain.ProductionStage{
		Name:            in.Name,
		Status:          status,
		StartDate:       in.StartDate,
		DurationDays:    in.DurationDays,
		UseBusinessDays: in.UseBusinessDays,
	}
}

func buildResponse(plan *domain.ProductionPlan) *Response {
	stages := make([]StageResult, 0, len(plan.Stages))
	scheduled := 0
	for i := range plan.Stages {
		st := &plan.Stages[i]
		ok := st.IsScheduled()
		if ok {
			scheduled++
		}
		stages = append(stages, StageResult{
			Name:            st.Name,
			Status:          st.Status.String(),
			StartDate:       st.StartDate,
			CompletedDate:   st.CompletedDate,
			DurationDays:    st.EffectiveDuration(),
			UseBusinessDays: st.UseBusinessDays,
			Scheduled:       ok,
		})
	}

	return &Response{
		PlanID:           plan.PlanID,
		OrderNumber:      plan.OrderNumber,
		ItemName:         plan.ItemName,
		StageCount:       len(plan.Stages),
		ScheduledCount:   scheduled,
		UnscheduledCount: len(plan.Stages) - scheduled,
		Stages:           stages,
	}
}
