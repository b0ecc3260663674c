package calendar

import (
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

// Calendar decides whether a date is a working day and shifts dates to
// working days. It is a pure utility over the injected holiday set; none
// of its operations fail.
type Calendar struct {
	holidays *domain.HolidaySet
}

func New(holidays *domain.HolidaySet) *Calendar {
	if holidays == nil {
		holidays = domain.NewHolidaySet()
	}
	return &Calendar{holidays: holidays}
}

// IsHoliday reports whether the date (ignoring time-of-day) is listed in
// the holiday set.
func (c *Calendar) IsHoliday(t time.Time) bool {
	return c.holidays.Contains(t)
}

// IsBusinessDay reports whether the date is neither a weekend day nor a
// holiday.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	wd := domain.Day(t).Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.IsHoliday(t)
}

// NextBusinessDay returns the first business day strictly after t. It
// never returns t itself, even when t is already a business day.
func (c *Calendar) NextBusinessDay(t time.Time) time.Time {
	d := domain.Day(t)
	for {
		d = d.AddDate(0, 0, 1)
		if c.IsBusinessDay(d) {
			return d
		}
	}
}

// AddBusinessDays returns the date n business days after t, not counting
// t itself. n = 0 returns t unchanged; negative n walks backward.
func (c *Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	d := domain.Day(t)
	if n == 0 {
		return d
	}

	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		d = d.AddDate(0, 0, step)
		if c.IsBusinessDay(d) {
			n--
		}
	}
	return d
}

// CountBusinessDays counts business days from start through end,
// inclusive. Equal dates count as one; an end before start yields zero.
func (c *Calendar) CountBusinessDays(start, end time.Time) int {
	s, e := domain.Day(start), domain.Day(end)
	if s.Equal(e) {
		return 1
	}
	if e.Before(s) {
		return 0
	}

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}
