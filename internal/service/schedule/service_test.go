package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func durationOf(d float64) *float64 {
	return &d
}

type memoryPlanRepo struct {
	plans map[string]*domain.ProductionPlan
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{plans: make(map[string]*domain.ProductionPlan)}
}

func (r *memoryPlanRepo) SavePlan(_ context.Context, plan *domain.ProductionPlan) error {
	r.plans[plan.PlanID] = plan.Clone()
	return nil
}

func (r *memoryPlanRepo) GetPlan(_ context.Context, planID string) (*domain.ProductionPlan, error) {
	plan, ok := r.plans[planID]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return plan.Clone(), nil
}

func (r *memoryPlanRepo) ListPlans(_ context.Context) ([]*domain.ProductionPlan, error) {
	out := make([]*domain.ProductionPlan, 0, len(r.plans))
	for _, plan := range r.plans {
		out = append(out, plan.Clone())
	}
	return out, nil
}

func (r *memoryPlanRepo) DeletePlan(_ context.Context, planID string) error {
	delete(r.plans, planID)
	return nil
}

func testPlan() *domain.ProductionPlan {
	anchor := date(2024, time.June, 3) // Monday
	plan := domain.NewProductionPlan("plan-1", "ORD-100", "bracket")
	plan.Stages = []domain.ProductionStage{
		{Name: "cutting", Status: domain.StagePending, StartDate: &anchor, DurationDays: durationOf(1), UseBusinessDays: true},
		{Name: "welding", Status: domain.StagePending, DurationDays: durationOf(1), UseBusinessDays: true},
	}
	return plan
}

func TestService_UpsertPlanSchedulesAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPlanRepo()
	svc := NewService(repo, nil, nil, nil, 2)

	resp, err := svc.UpsertPlan(ctx, testPlan(), "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StageCount != 2 || resp.ScheduledCount != 2 || resp.UnscheduledCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/2/0", resp.StageCount, resp.ScheduledCount, resp.UnscheduledCount)
	}

	stored, err := repo.GetPlan(ctx, "plan-1")
	if err != nil {
		t.Fatalf("plan was not persisted: %v", err)
	}
	if stored.Stages[1].StartDate == nil {
		t.Error("persisted plan must carry computed dates")
	}
}

func TestService_ApplyEdit(t *testing.T) {
	newAnchor := date(2024, time.June, 10)
	longer := durationOf(2.5)
	calendarDays := false
	inProgress := domain.StageInProgress
	invalid := domain.StageStatus("paused")
	position := 1

	tests := []struct {
		name    string
		edit    Edit
		wantErr error
		check   func(t *testing.T, resp *Response)
	}{
		{
			name: "set anchor moves every stage",
			edit: Edit{Kind: EditSetAnchor, AnchorDate: &newAnchor},
			check: func(t *testing.T, resp *Response) {
				if !resp.Stages[0].StartDate.Equal(newAnchor) {
					t.Errorf("anchor = %v, want %v", resp.Stages[0].StartDate, newAnchor)
				}
				if !resp.Stages[1].StartDate.After(newAnchor) {
					t.Errorf("downstream stage %v did not move past new anchor", resp.Stages[1].StartDate)
				}
			},
		},
		{
			name: "set duration recomputes downstream",
			edit: Edit{Kind: EditSetDuration, StageName: "cutting", DurationDays: longer},
			check: func(t *testing.T, resp *Response) {
				// 2.5 days of effort from Monday rounds up to three
				// business-day steps, so welding starts Friday.
				if !resp.Stages[1].StartDate.Equal(date(2024, time.June, 7)) {
					t.Errorf("welding start = %v, want 2024-06-07", resp.Stages[1].StartDate)
				}
			},
		},
		{
			name:    "set duration without payload fails",
			edit:    Edit{Kind: EditSetDuration, StageName: "cutting"},
			wantErr: ErrMissingPayload,
		},
		{
			name: "set business days flag",
			edit: Edit{Kind: EditSetBusinessDays, StageName: "welding", UseBusinessDays: &calendarDays},
			check: func(t *testing.T, resp *Response) {
				if resp.Stages[1].UseBusinessDays {
					t.Error("welding should use calendar days after the edit")
				}
			},
		},
		{
			name: "set status",
			edit: Edit{Kind: EditSetStatus, StageName: "cutting", Status: &inProgress},
			check: func(t *testing.T, resp *Response) {
				if resp.Stages[0].Status != inProgress.String() {
					t.Errorf("status = %s, want %s", resp.Stages[0].Status, inProgress)
				}
			},
		},
		{
			name:    "set invalid status fails",
			edit:    Edit{Kind: EditSetStatus, StageName: "cutting", Status: &invalid},
			wantErr: domain.ErrInvalidStatus,
		},
		{
			name:    "edit unknown stage fails",
			edit:    Edit{Kind: EditSetDuration, StageName: "ghost", DurationDays: longer},
			wantErr: domain.ErrStageNotFound,
		},
		{
			name: "add stage at position",
			edit: Edit{Kind: EditAddStage, Stage: &StageInput{Name: "deburring", DurationDays: durationOf(0.5), UseBusinessDays: true}, Position: &position},
			check: func(t *testing.T, resp *Response) {
				if resp.StageCount != 3 || resp.Stages[1].Name != "deburring" {
					t.Errorf("stages = %v, want deburring inserted at index 1", resp.Stages)
				}
				if resp.Stages[1].StartDate == nil {
					t.Error("inserted stage must be scheduled by the recompute")
				}
			},
		},
		{
			name:    "add duplicate stage fails",
			edit:    Edit{Kind: EditAddStage, Stage: &StageInput{Name: "welding"}},
			wantErr: ErrDuplicateStage,
		},
		{
			name: "remove stage closes the gap",
			edit: Edit{Kind: EditRemoveStage, StageName: "cutting"},
			check: func(t *testing.T, resp *Response) {
				if resp.StageCount != 1 || resp.Stages[0].Name != "welding" {
					t.Errorf("stages = %v, want only welding", resp.Stages)
				}
			},
		},
		{
			name:    "unknown edit kind fails",
			edit:    Edit{Kind: EditKind("rename_stage")},
			wantErr: ErrUnknownEditKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newMemoryPlanRepo()
			svc := NewService(repo, nil, nil, nil, 2)

			if _, err := svc.UpsertPlan(ctx, testPlan(), "run-1"); err != nil {
				t.Fatalf("failed to seed plan: %v", err)
			}

			resp, err := svc.ApplyEdit(ctx, "plan-1", tt.edit, "run-2")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, resp)
		})
	}
}

func TestService_ApplyEditUnknownPlan(t *testing.T) {
	svc := NewService(newMemoryPlanRepo(), nil, nil, nil, 2)

	_, err := svc.ApplyEdit(context.Background(), "missing", Edit{Kind: EditSetAnchor}, "run-1")
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Errorf("error = %v, want %v", err, domain.ErrPlanNotFound)
	}
}

func TestService_UpsertPlanWithoutAnchor(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPlanRepo()
	svc := NewService(repo, nil, nil, nil, 2)

	plan := testPlan()
	plan.Stages[0].StartDate = nil

	resp, err := svc.UpsertPlan(ctx, plan, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ScheduledCount != 0 || resp.UnscheduledCount != 2 {
		t.Errorf("counts = %d scheduled / %d unscheduled, want 0/2", resp.ScheduledCount, resp.UnscheduledCount)
	}
	for _, st := range resp.Stages {
		if st.Scheduled || st.StartDate != nil {
			t.Errorf("stage %s should be unscheduled", st.Name)
		}
	}
}
