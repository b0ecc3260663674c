package domain

import "errors"

var (
	ErrPlanNotFound     = errors.New("production plan not found")
	ErrCalendarNotFound = errors.New("holiday calendar not found")
	ErrStageNotFound    = errors.New("stage not found")
	ErrInvalidStatus    = errors.New("invalid stage status")
)
