package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validSections() ReportSections {
	return ReportSections{
		Health:             "health analysis",
		Finance:            "finance analysis",
		Study:              "study analysis",
		Coordination:       "coordination plan",
		CrossDomainInsight: "stress drives everything else",
	}
}

func TestNewAnalysisReport(t *testing.T) {
	t.Parallel()

	userCtx := UserContext{StressLevel: 6, MonthlyBudget: 2000}
	report, err := NewAnalysisReport(userCtx, validSections(), false, 1500*time.Millisecond)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.ID == uuid.Nil {
		t.Error("Expected non-nil report ID")
	}
	if report.UserContext != userCtx {
		t.Errorf("Expected user context %+v, got %+v", userCtx, report.UserContext)
	}
	if report.Fallback {
		t.Error("Expected fallback flag to be false")
	}
	if report.ExecutionTime != 1500*time.Millisecond {
		t.Errorf("Expected execution time 1.5s, got %v", report.ExecutionTime)
	}
	if report.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewAnalysisReportRejectsEmptySections(t *testing.T) {
	t.Parallel()

	empty := func(mutate func(*ReportSections)) ReportSections {
		s := validSections()
		mutate(&s)
		return s
	}

	tests := []struct {
		name     string
		sections ReportSections
	}{
		{"empty health", empty(func(s *ReportSections) { s.Health = "" })},
		{"empty finance", empty(func(s *ReportSections) { s.Finance = "" })},
		{"empty study", empty(func(s *ReportSections) { s.Study = "" })},
		{"empty coordination", empty(func(s *ReportSections) { s.Coordination = "" })},
		{"empty insight", empty(func(s *ReportSections) { s.CrossDomainInsight = "" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAnalysisReport(UserContext{}, tt.sections, false, 0)
			if !errors.Is(err, ErrEmptySection) {
				t.Errorf("Expected ErrEmptySection, got %v", err)
			}
		})
	}
}
