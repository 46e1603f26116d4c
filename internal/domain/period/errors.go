package period

import "errors"

var (
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrPeriodNotFound = errors.New("period not found")
)
