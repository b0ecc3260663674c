package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	plansRecomputed    metric.Int64Counter
	stagesScheduled    metric.Int64Counter
	stagesUnscheduled  metric.Int64Counter
	recomputeDuration  metric.Float64Histogram
	triageDuration     metric.Float64Histogram
	bucketDistribution metric.Int64Counter
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	plansRecomputed, err := meter.Int64Counter(
		"schedule_plans_recomputed_total",
		metric.WithDescription("Total number of full-plan recomputes"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	stagesScheduled, err := meter.Int64Counter(
		"schedule_stages_scheduled_total",
		metric.WithDescription("Total number of stages assigned dates by a recompute"),
		metric.WithUnit("{stage}"),
	)
	if err != nil {
		return nil, err
	}

	stagesUnscheduled, err := meter.Int64Counter(
		"schedule_stages_unscheduled_total",
		metric.WithDescription("Total number of stages left without dates by a recompute"),
		metric.WithUnit("{stage}"),
	)
	if err != nil {
		return nil, err
	}

	recomputeDuration, err := meter.Float64Histogram(
		"schedule_recompute_duration_seconds",
		metric.WithDescription("Full-plan recompute duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	triageDuration, err := meter.Float64Histogram(
		"schedule_triage_duration_seconds",
		metric.WithDescription("Backlog triage pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	bucketDistribution, err := meter.Int64Counter(
		"schedule_triage_bucket_total",
		metric.WithDescription("Distribution of triaged tasks across buckets"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		plansRecomputed:    plansRecomputed,
		stagesScheduled:    stagesScheduled,
		stagesUnscheduled:  stagesUnscheduled,
		recomputeDuration:  recomputeDuration,
		triageDuration:     triageDuration,
		bucketDistribution: bucketDistribution,
	}, nil
}

func (m *ScheduleMetrics) RecordPlanRecomputed(ctx context.Context, trigger string) {
	m.plansRecomputed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *ScheduleMetrics) RecordStageCounts(ctx context.Context, scheduled, unscheduled int) {
	if scheduled > 0 {
		m.stagesScheduled.Add(ctx, int64(scheduled))
	}
	if unscheduled > 0 {
		m.stagesUnscheduled.Add(ctx, int64(unscheduled))
	}
}

func (m *ScheduleMetrics) RecordRecomputeDuration(ctx context.Context, duration time.Duration) {
	m.recomputeDuration.Record(ctx, duration.Seconds())
}

func (m *ScheduleMetrics) RecordTriageDuration(ctx context.Context, duration time.Duration) {
	m.triageDuration.Record(ctx, duration.Seconds())
}

func (m *ScheduleMetrics) RecordBucketDistribution(ctx context.Context, bucket string, count int) {
	if count <= 0 {
		return
	}
	m.bucketDistribution.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("bucket", bucket),
	))
}
