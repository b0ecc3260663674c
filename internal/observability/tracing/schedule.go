package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/atelieflow/production-scheduling/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartRecomputeSpan(ctx context.Context, planID, trigger string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.recompute",
		trace.WithAttributes(
			attribute.String("plan_id", planID),
			attribute.String("trigger", trigger),
		),
	)
}

func StartTriageSpan(ctx context.Context, referenceDay time.Time) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.triage",
		trace.WithAttributes(
			attribute.String("reference_day", referenceDay.Format(time.RFC3339)),
		),
	)
}

func RecordRecomputeResult(span trace.Span, stageCount, scheduledCount, unscheduledCount int, err error) {
	span.SetAttributes(
		attribute.Int("recompute.stage_count", stageCount),
		attribute.Int("recompute.scheduled_count", scheduledCount),
		attribute.Int("recompute.unscheduled_count", unscheduledCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordTriageResult(span trace.Span, overdueCount, todayCount, futureCount, unscheduledCount int, err error) {
	span.SetAttributes(
		attribute.Int("triage.overdue_count", overdueCount),
		attribute.Int("triage.today_count", todayCount),
		attribute.Int("triage.future_count", futureCount),
		attribute.Int("triage.unscheduled_count", unscheduledCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
