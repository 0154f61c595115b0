package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lifeops/lifeops-api/internal/domain"
)

// MemoryReportStore is a concurrency-safe in-memory ReportStore.
type MemoryReportStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*domain.AnalysisReport
}

var _ ReportStore = (*MemoryReportStore)(nil)

// NewMemoryReportStore creates an empty in-memory store.
func NewMemoryReportStore() *MemoryReportStore {
	return &MemoryReportStore{
		reports: make(map[uuid.UUID]*domain.AnalysisReport),
	}
}

// Save stores the report, keyed by its ID. Reports are immutable after
// creation, so the pointer is stored as-is.
func (s *MemoryReportStore) Save(_ context.Context, report *domain.AnalysisReport) error {
	if err := report.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
	return nil
}

// Get retrieves a report by ID.
func (s *MemoryReportStore) Get(_ context.Context, id uuid.UUID) (*domain.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return report, nil
}
