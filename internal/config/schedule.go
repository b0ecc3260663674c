package config

import (
	"os"
	"strconv"
)

const (
	calendarHorizonYearsEnv = "CALENDAR_HORIZON_YEARS"

	defaultCalendarHorizonYears = 2
)

type ScheduleConfig struct {
	// CalendarHorizonYears is how many years past the anchor date the
	// business calendar is assembled for when recomputing a plan.
	CalendarHorizonYears int
}

func LoadScheduleConfig() *ScheduleConfig {
	horizon := defaultCalendarHorizonYears
	if v := os.Getenv(calendarHorizonYearsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	return &ScheduleConfig{
		CalendarHorizonYears: horizon,
	}
}
