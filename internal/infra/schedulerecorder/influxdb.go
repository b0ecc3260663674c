package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordRecomputeResults(ctx context.Context, records []domain.RecomputeResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		fields := map[string]any{
			"stage_count":       record.StageCount,
			"scheduled_count":   record.ScheduledCount,
			"unscheduled_count": record.UnscheduledCount,
		}
		if record.AnchorDate != nil {
			fields["anchor_unix"] = record.AnchorDate.Unix()
		}

		point := influxdb2.NewPoint(
			"recompute_result",
			map[string]string{
				"run_id":       runID,
				"plan_id":      record.PlanID,
				"order_number": record.OrderNumber,
			},
			fields,
			time.Now(),
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write recompute result to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("plan_id", record.PlanID),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) RecordTriageResult(ctx context.Context, record domain.TriageResultRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"triage_result",
		map[string]string{
			"run_id":        runID,
			"reference_day": domain.DayKey(record.ReferenceDay),
		},
		map[string]any{
			"overdue_count":     record.OverdueCount,
			"today_count":       record.TodayCount,
			"future_count":      record.FutureCount,
			"unscheduled_count": record.UnscheduledCount,
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write triage result to InfluxDB",
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
