// Package store defines persistence interfaces for completed analysis
// reports and the in-memory implementation the service runs with.
// Reports are session artifacts, so process-lifetime storage is the
// intended scope; the interface leaves room for a durable backend.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lifeops/lifeops-api/internal/domain"
)

// ErrReportNotFound is returned when no report exists for the given ID.
var ErrReportNotFound = errors.New("report not found")

// ReportStore saves and retrieves completed analysis reports.
type ReportStore interface {
	// Save stores the report, keyed by its ID.
	Save(ctx context.Context, report *domain.AnalysisReport) error

	// Get retrieves a report by ID. Returns ErrReportNotFound when the
	// ID is unknown.
	Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisReport, error)
}
