package cascade

import (
	"math"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
	"github.com/atelieflow/production-scheduling/internal/service/calendar"
)

// Engine recomputes start and completion dates for every stage of a
// production plan in one forward pass. It is stateless between calls and
// always recomputes the full plan from the anchor stage: partial
// recomputes are where divergent results come from.
type Engine struct {
	cal *calendar.Calendar
}

func NewEngine(cal *calendar.Calendar) *Engine {
	if cal == nil {
		cal = calendar.New(nil)
	}
	return &Engine{cal: cal}
}

// Recompute returns a new plan value with every stage's dates derived
// from the first stage's start date, each stage's duration, and each
// stage's business-day flag. The input plan is not modified.
//
// Sub-day business stages stack on the same day: their effort accumulates
// in a fractional carry, and the stage that tips the running total past a
// whole day is the one that advances the cursor.
func (e *Engine) Recompute(plan *domain.ProductionPlan) *domain.ProductionPlan {
	out := plan.Clone()
	if len(out.Stages) == 0 {
		return out
	}

	// A plan whose first stage has no start date has no anchor: every
	// stage is unscheduled.
	if out.Stages[0].StartDate == nil {
		clearDates(out.Stages)
		return out
	}

	var cursor *time.Time
	carry := 0.0

	for i := range out.Stages {
		st := &out.Stages[i]

		if i == 0 {
			start := domain.Day(*st.StartDate)
			if st.UseBusinessDays && !e.cal.IsBusinessDay(start) {
				start = e.cal.NextBusinessDay(start)
			}
			st.StartDate = &start
		} else {
			if cursor == nil {
				st.StartDate = nil
				st.CompletedDate = nil
				continue
			}
			var start time.Time
			if st.UseBusinessDays {
				start = e.cal.NextBusinessDay(*cursor)
			} else {
				start = cursor.AddDate(0, 0, 1)
			}
			st.StartDate = &start
		}

		duration := st.EffectiveDuration()
		start := *st.StartDate

		if !st.UseBusinessDays {
			done := start.AddDate(0, 0, int(math.Ceil(duration)))
			st.CompletedDate = &done
			cursor = &done
			carry = 0
			continue
		}

		if i == 0 {
			carry = duration
		} else {
			carry += duration
		}

		if carry >= 1 {
			steps := int(math.Ceil(carry))
			done := e.cal.AddBusinessDays(start, steps)
			st.CompletedDate = &done
			cursor = &done
			// Only whole days are consumed; the fraction rolls into
			// the next stage.
			carry -= math.Floor(carry)
		} else {
			done := start
			st.CompletedDate = &done
			cursor = &start
		}
	}

	return out
}

func clearDates(stages []domain.ProductionStage) {
	for i := range stages {
		stages[i].StartDate = nil
		stages[i].CompletedDate = nil
	}
}
