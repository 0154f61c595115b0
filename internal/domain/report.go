package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportSections bundles the five text sections of an AnalysisReport.
type ReportSections struct {
	Health             string
	Finance            string
	Study              string
	Coordination       string
	CrossDomainInsight string
}

// AnalysisReport is the terminal artifact of one advisor run: three
// per-domain analyses, the coordination plan, and the extracted
// cross-domain insight, together with the context that produced them.
// A report is created once per run and never mutated afterwards.
type AnalysisReport struct {
	ID                 uuid.UUID     `json:"id"`
	Health             string        `json:"health"`
	Finance            string        `json:"finance"`
	Study              string        `json:"study"`
	Coordination       string        `json:"coordination"`
	CrossDomainInsight string        `json:"cross_domain_insight"`
	UserContext        UserContext   `json:"user_context"`
	Fallback           bool          `json:"fallback"`
	ExecutionTime      time.Duration `json:"execution_time"`
	CreatedAt          time.Time     `json:"created_at"`
}

// NewAnalysisReport creates a report from the given context and sections.
// It generates a new UUID and stamps the creation time.
// Returns an error if any section is empty.
func NewAnalysisReport(
	userCtx UserContext,
	sections ReportSections,
	fallback bool,
	executionTime time.Duration,
) (*AnalysisReport, error) {
	report := &AnalysisReport{
		ID:                 uuid.New(),
		Health:             sections.Health,
		Finance:            sections.Finance,
		Study:              sections.Study,
		Coordination:       sections.Coordination,
		CrossDomainInsight: sections.CrossDomainInsight,
		UserContext:        userCtx,
		Fallback:           fallback,
		ExecutionTime:      executionTime,
		CreatedAt:          time.Now().UTC(),
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	return report, nil
}

// Validate checks that the report is complete: the contract is
// "always a full five-section report", never a partial one.
func (r *AnalysisReport) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReportIDEmpty
	}

	sections := map[string]string{
		"health":               r.Health,
		"finance":              r.Finance,
		"study":                r.Study,
		"coordination":         r.Coordination,
		"cross_domain_insight": r.CrossDomainInsight,
	}
	for name, text := range sections {
		if text == "" {
			return fmt.Errorf("%w: %s", ErrEmptySection, name)
		}
	}

	return nil
}
