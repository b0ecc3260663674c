package triage

import (
	"testing"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateRef(y int, m time.Month, d int) *time.Time {
	v := date(y, m, d)
	return &v
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()
	now := date(2024, time.June, 12)

	tests := []struct {
		name       string
		task       domain.Task
		wantBucket domain.Bucket
	}{
		{
			name: "due yesterday is overdue",
			task: domain.Task{
				StageName: "welding",
				Status:    domain.StageInProgress,
				DueDate:   dateRef(2024, time.June, 11),
			},
			wantBucket: domain.BucketOverdue,
		},
		{
			name: "due yesterday with start today is still overdue",
			task: domain.Task{
				StageName: "welding",
				Status:    domain.StageInProgress,
				StartDate: dateRef(2024, time.June, 12),
				DueDate:   dateRef(2024, time.June, 11),
			},
			wantBucket: domain.BucketOverdue,
		},
		{
			name: "due today is today, not overdue",
			task: domain.Task{
				StageName: "painting",
				Status:    domain.StagePending,
				DueDate:   dateRef(2024, time.June, 12),
			},
			wantBucket: domain.BucketToday,
		},
		{
			name: "starts today without a due date is today",
			task: domain.Task{
				StageName: "assembly",
				Status:    domain.StagePending,
				StartDate: dateRef(2024, time.June, 12),
			},
			wantBucket: domain.BucketToday,
		},
		{
			name: "due tomorrow is future",
			task: domain.Task{
				StageName: "packing",
				Status:    domain.StagePending,
				DueDate:   dateRef(2024, time.June, 13),
			},
			wantBucket: domain.BucketFuture,
		},
		{
			name: "starts next week without a due date is future",
			task: domain.Task{
				StageName: "shipping",
				Status:    domain.StagePending,
				StartDate: dateRef(2024, time.June, 17),
			},
			wantBucket: domain.BucketFuture,
		},
		{
			name: "due time late in the day still compares by calendar day",
			task: domain.Task{
				StageName: "inspection",
				Status:    domain.StagePending,
				DueDate:   func() *time.Time { v := time.Date(2024, time.June, 12, 23, 30, 0, 0, time.UTC); return &v }(),
			},
			wantBucket: domain.BucketToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify([]domain.Task{tt.task}, now)

			got := bucketOf(t, result)
			if got != tt.wantBucket {
				t.Errorf("classified as %s, want %s", got, tt.wantBucket)
			}
		})
	}
}

func bucketOf(t *testing.T, r *Result) domain.Bucket {
	t.Helper()

	total := len(r.Overdue) + len(r.Today) + len(r.Future)
	if total != 1 {
		t.Fatalf("expected exactly one classified task, got %d", total)
	}

	switch {
	case len(r.Overdue) == 1:
		return domain.BucketOverdue
	case len(r.Today) == 1:
		return domain.BucketToday
	default:
		return domain.BucketFuture
	}
}

func TestClassifier_SkipsCompletedAndCollectsUnscheduled(t *testing.T) {
	classifier := NewClassifier()
	now := date(2024, time.June, 12)

	tasks := []domain.Task{
		{StageName: "done", Status: domain.StageCompleted, DueDate: dateRef(2024, time.June, 1)},
		{StageName: "floating", Status: domain.StagePending},
	}

	result := classifier.Classify(tasks, now)

	if len(result.Overdue)+len(result.Today)+len(result.Future) != 0 {
		t.Error("completed and unscheduled tasks must not land in a bucket")
	}
	if len(result.Unscheduled) != 1 || result.Unscheduled[0].StageName != "floating" {
		t.Errorf("unscheduled = %v, want the floating task", result.Unscheduled)
	}
}

func TestClassifier_SetsOverdueFlag(t *testing.T) {
	classifier := NewClassifier()
	now := date(2024, time.June, 12)

	tasks := []domain.Task{
		{StageName: "late", Status: domain.StageInProgress, DueDate: dateRef(2024, time.June, 10)},
		{StageName: "current", Status: domain.StageInProgress, DueDate: dateRef(2024, time.June, 12)},
	}

	result := classifier.Classify(tasks, now)

	if len(result.Overdue) != 1 || !result.Overdue[0].IsOverdue {
		t.Error("overdue task must carry the overdue flag")
	}
	if len(result.Today) != 1 || result.Today[0].IsOverdue {
		t.Error("today task must not carry the overdue flag")
	}
}

func TestClassifier_OrderingWithinBuckets(t *testing.T) {
	classifier := NewClassifier()
	now := date(2024, time.June, 12)

	tasks := []domain.Task{
		{StageName: "b-stage", OrderNumber: "ORD-2", Status: domain.StagePending, DueDate: dateRef(2024, time.June, 10)},
		{StageName: "a-stage", OrderNumber: "ORD-2", Status: domain.StagePending, DueDate: dateRef(2024, time.June, 10)},
		{StageName: "c-stage", OrderNumber: "ORD-1", Status: domain.StagePending, DueDate: dateRef(2024, time.June, 9)},
		{StageName: "d-stage", OrderNumber: "ORD-3", Status: domain.StagePending, StartDate: dateRef(2024, time.June, 20)},
		{StageName: "e-stage", OrderNumber: "ORD-3", Status: domain.StagePending, StartDate: dateRef(2024, time.June, 14)},
	}

	result := classifier.Classify(tasks, now)

	// Overdue sorts ascending by due date, ties break by order number
	// then stage name.
	wantOverdue := []string{"c-stage", "a-stage", "b-stage"}
	for i, want := range wantOverdue {
		if result.Overdue[i].StageName != want {
			t.Errorf("overdue[%d] = %s, want %s", i, result.Overdue[i].StageName, want)
		}
	}

	// Future sorts ascending by start date.
	wantFuture := []string{"e-stage", "d-stage"}
	for i, want := range wantFuture {
		if result.Future[i].StageName != want {
			t.Errorf("future[%d] = %s, want %s", i, result.Future[i].StageName, want)
		}
	}
}

func TestClassifier_BucketsAreDisjointAndExhaustive(t *testing.T) {
	classifier := NewClassifier()
	now := date(2024, time.June, 12)

	tasks := []domain.Task{
		{StageName: "s1", Status: domain.StagePending, DueDate: dateRef(2024, time.June, 1)},
		{StageName: "s2", Status: domain.StagePending, DueDate: dateRef(2024, time.June, 12)},
		{StageName: "s3", Status: domain.StagePending, StartDate: dateRef(2024, time.June, 12)},
		{StageName: "s4", Status: domain.StagePending, DueDate: dateRef(2024, time.July, 1)},
		{StageName: "s5", Status: domain.StagePending, StartDate: dateRef(2024, time.June, 12), DueDate: dateRef(2024, time.June, 14)},
	}

	result := classifier.Classify(tasks, now)

	seen := make(map[string]int)
	for _, task := range result.Overdue {
		seen[task.StageName]++
	}
	for _, task := range result.Today {
		seen[task.StageName]++
	}
	for _, task := range result.Future {
		seen[task.StageName]++
	}

	if len(seen) != len(tasks) {
		t.Errorf("classified %d distinct tasks, want %d", len(seen), len(tasks))
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("task %s appears in %d buckets, want exactly 1", name, count)
		}
	}
}
