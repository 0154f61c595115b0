package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownDomain is returned when a value is not one of the
	// three analysis domains.
	ErrUnknownDomain = errors.New("unknown analysis domain")

	// ErrEmptySection is returned when a report text section is empty.
	ErrEmptySection = errors.New("report section cannot be empty")

	// ErrReportIDEmpty is returned when a report ID is nil.
	ErrReportIDEmpty = errors.New("report ID cannot be empty")
)
