package calendar

import "errors"

var (
	errEmptyResponse = errors.New("reservations api: empty response")
	ErrInvalidMonth  = errors.New("invalid month; expected YYYY-MM")
)
