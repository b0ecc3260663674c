package repository

import "errors"

var (
	ErrInvalidPlanData     = errors.New("invalid plan data")
	ErrInvalidCalendarData = errors.New("invalid calendar data")
)
