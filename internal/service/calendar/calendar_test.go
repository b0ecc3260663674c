package calendar

import (
	"testing"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCalendar() *Calendar {
	// 2024-01-01 is a Monday.
	return New(domain.NewHolidaySet(date(2024, time.January, 1)))
}

func TestCalendar_IsBusinessDay(t *testing.T) {
	cal := newTestCalendar()

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{
			name: "holiday Monday is not a business day",
			day:  date(2024, time.January, 1),
			want: false,
		},
		{
			name: "regular Tuesday is a business day",
			day:  date(2024, time.January, 2),
			want: true,
		},
		{
			name: "Saturday is not a business day",
			day:  date(2024, time.January, 6),
			want: false,
		},
		{
			name: "Sunday is not a business day",
			day:  date(2024, time.January, 7),
			want: false,
		},
		{
			name: "time-of-day is ignored",
			day:  time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.IsBusinessDay(tt.day); got != tt.want {
				t.Errorf("IsBusinessDay(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestCalendar_NextBusinessDay(t *testing.T) {
	cal := newTestCalendar()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "business day advances to the next one, never returns itself",
			from: date(2024, time.January, 2),
			want: date(2024, time.January, 3),
		},
		{
			name: "Friday skips the weekend",
			from: date(2024, time.January, 5),
			want: date(2024, time.January, 8),
		},
		{
			name: "Sunday before a holiday skips the holiday too",
			from: date(2023, time.December, 31),
			want: date(2024, time.January, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.NextBusinessDay(tt.from)
			if !got.Equal(tt.want) {
				t.Errorf("NextBusinessDay(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestCalendar_AddBusinessDays(t *testing.T) {
	cal := newTestCalendar()

	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{
			name: "zero returns the input day unchanged",
			from: date(2024, time.January, 6),
			n:    0,
			want: date(2024, time.January, 6),
		},
		{
			name: "one step from Tuesday lands on Wednesday",
			from: date(2024, time.January, 2),
			n:    1,
			want: date(2024, time.January, 3),
		},
		{
			name: "steps across a weekend",
			from: date(2024, time.January, 4),
			n:    2,
			want: date(2024, time.January, 8),
		},
		{
			name: "steps across the holiday",
			from: date(2023, time.December, 29),
			n:    1,
			want: date(2024, time.January, 2),
		},
		{
			name: "negative walks backward across the weekend",
			from: date(2024, time.January, 8),
			n:    -1,
			want: date(2024, time.January, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.AddBusinessDays(tt.from, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddBusinessDays(%v, %d) = %v, want %v", tt.from, tt.n, got, tt.want)
			}
		})
	}
}

func TestCalendar_CountBusinessDays(t *testing.T) {
	cal := newTestCalendar()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "equal dates count as one even on a weekend",
			start: date(2024, time.January, 6),
			end:   date(2024, time.January, 6),
			want:  1,
		},
		{
			name:  "end before start yields zero",
			start: date(2024, time.January, 8),
			end:   date(2024, time.January, 5),
			want:  0,
		},
		{
			name:  "full week minus weekend and holiday",
			start: date(2024, time.January, 1),
			end:   date(2024, time.January, 7),
			want:  4,
		},
		{
			name:  "inclusive on both ends",
			start: date(2024, time.January, 2),
			end:   date(2024, time.January, 3),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.CountBusinessDays(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("CountBusinessDays(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestCalendar_NilHolidaySet(t *testing.T) {
	cal := New(nil)

	if cal.IsHoliday(date(2024, time.January, 1)) {
		t.Error("calendar without holidays should report no holiday")
	}
	if !cal.IsBusinessDay(date(2024, time.January, 1)) {
		t.Error("weekday should be a business day without a holiday set")
	}
}
