package schedulerecorder

import (
	"context"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ScheduleResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRecomputeResults(_ context.Context, _ []domain.RecomputeResultRecord) error {
	return nil
}

func (n *noopRecorder) RecordTriageResult(_ context.Context, _ domain.TriageResultRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
