package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes
// without leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownDomain):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrReportNotFound):
		return http.StatusNotFound

	case errors.Is(err, generation.ErrRateLimited):
		return http.StatusTooManyRequests

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error strings never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, domain.ErrUnknownDomain):
		return "Unknown life domain"

	case errors.Is(err, store.ErrReportNotFound):
		return "Report not found"

	case errors.Is(err, generation.ErrRateLimited):
		return "Too many requests to the analysis backend"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The analysis request was rejected by content filtering"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError reduces a validator error to a short
// user-friendly message naming the offending field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Format: "Key: 'AnalyzeRequest.ExamDate' Error:Field validation for 'ExamDate' failed on the 'datetime' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "datetime":
		return "expected YYYY-MM-DD"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
