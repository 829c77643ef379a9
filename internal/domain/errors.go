package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrGenerationInFlight = errors.New("segment generation already in flight")
	ErrMetricsUnavailable = errors.New("no metrics computed yet")
)
