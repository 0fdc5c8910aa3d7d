package ponto

import "errors"

// Ponto domain errors
var (
	ErrInvalidDate   = errors.New("date is not in a recognized format")
	ErrFetchFailed   = errors.New("attendance data source is unavailable")
	ErrNoDataForDate = errors.New("no attendance data recorded for this date")
)
