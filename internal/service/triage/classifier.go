package triage

import (
	"sort"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

// Result partitions outstanding tasks into the three triage buckets.
// Unscheduled holds tasks with no dates at all; they belong to no bucket
// and are reported separately.
type Result struct {
	Overdue     []domain.Task `json:"overdue"`
	Today       []domain.Task `json:"today"`
	Future      []domain.Task `json:"future"`
	Unscheduled []domain.Task `json:"unscheduled,omitempty"`
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify buckets every incomplete task against the reference day.
// Comparison is at calendar-day granularity: a due date on an earlier day
// is overdue regardless of the task's start date, a due or start date on
// the reference day lands in today, and everything else with at least one
// date is future. Completed stages must be filtered out upstream.
func (c *Classifier) Classify(tasks []domain.Task, now time.Time) *Result {
	day := domain.Day(now)

	result := &Result{
		Overdue:     make([]domain.Task, 0),
		Today:       make([]domain.Task, 0),
		Future:      make([]domain.Task, 0),
		Unscheduled: make([]domain.Task, 0),
	}

	for _, task := range tasks {
		if task.Status.IsCompleted() {
			continue
		}
		if task.IsUnscheduled() {
			result.Unscheduled = append(result.Unscheduled, task)
			continue
		}

		switch {
		case isOverdue(task, day):
			task.IsOverdue = true
			result.Overdue = append(result.Overdue, task)
		case isToday(task, day):
			result.Today = append(result.Today, task)
		default:
			result.Future = append(result.Future, task)
		}
	}

	sortByDue(result.Overdue)
	sortByDue(result.Today)
	sortByStart(result.Future)

	return result
}

func isOverdue(task domain.Task, day time.Time) bool {
	return task.DueDate != nil && domain.Day(*task.DueDate).Before(day)
}

func isToday(task domain.Task, day time.Time) bool {
	if task.DueDate != nil && domain.Day(*task.DueDate).Equal(day) {
		return true
	}
	return task.StartDate != nil && domain.Day(*task.StartDate).Equal(day)
}

// sortByDue orders ascending by due date with nil dues last; ties break
// by order number then stage name so repeated passes are deterministic.
func sortByDue(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessByDate(tasks[i], tasks[j], tasks[i].DueDate, tasks[j].DueDate)
	})
}

func sortByStart(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessByDate(tasks[i], tasks[j], tasks[i].StartDate, tasks[j].StartDate)
	})
}

func lessByDate(a, b domain.Task, da, db *time.Time) bool {
	switch {
	case da == nil && db == nil:
		// fall through to tie-break
	case da == nil:
		return false
	case db == nil:
		return true
	case !da.Equal(*db):
		return da.Before(*db)
	}
	if a.OrderNumber != b.OrderNumber {
		return a.OrderNumber < b.OrderNumber
	}
	return a.StageName < b.StageName
}
