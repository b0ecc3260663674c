package domain

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey normalizes a timestamp to its UTC calendar day key.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}

// Day truncates a timestamp to UTC midnight. All scheduler arithmetic
// works on day-normalized values.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HolidayCalendar is the injected, versioned holiday data for one year.
// The scheduling engine never computes holidays itself.
type HolidayCalendar struct {
	Year      int         `json:"year"`
	Version   string      `json:"version"`
	Holidays  []time.Time `json:"holidays"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// HolidaySet is an immutable day-keyed set of holiday dates, possibly
// spanning several years.
type HolidaySet struct {
	days map[string]struct{}
}

func NewHolidaySet(dates ...time.Time) *HolidaySet {
	s := &HolidaySet{days: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		s.days[DayKey(d)] = struct{}{}
	}
	return s
}

// Merge returns a new set containing the days of both sets.
func (s *HolidaySet) Merge(other *HolidaySet) *HolidaySet {
	out := &HolidaySet{days: make(map[string]struct{}, len(s.days)+len(other.days))}
	for k := range s.days {
		out.days[k] = struct{}{}
	}
	for k := range other.days {
		out.days[k] = struct{}{}
	}
	return out
}

func (s *HolidaySet) Contains(t time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[DayKey(t)]
	return ok
}

func (s *HolidaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}
