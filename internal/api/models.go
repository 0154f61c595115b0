package api

import (
	"time"

	"github.com/lifeops/lifeops-api/internal/domain"
)

// AnalyzeRequest is the payload for the analysis endpoint. Every field
// is optional: missing values render as placeholders in the prompts and
// out-of-range numbers are clamped rather than rejected. Only malformed
// values, like an unparseable exam date, fail validation.
type AnalyzeRequest struct {
	StressLevel       int     `json:"stress_level"`
	SleepHours        int     `json:"sleep_hours"`
	ExerciseFrequency string  `json:"exercise_frequency" validate:"omitempty,max=500"`
	ExamDate          string  `json:"exam_date"           validate:"omitempty,datetime=2006-01-02"`
	DaysUntilExam     int     `json:"days_until_exam"`
	CurrentStudyHours int     `json:"current_study_hours"`
	Subjects          string  `json:"subjects"            validate:"omitempty,max=500"`
	MonthlyBudget     float64 `json:"monthly_budget"`
	CurrentExpenses   float64 `json:"current_expenses"`
	FinancialGoals    string  `json:"financial_goals"     validate:"omitempty,max=500"`
	Problem           string  `json:"problem"             validate:"omitempty,max=2000"`
}

// toUserContext converts the request to the domain context. When the
// caller gives an exam date but no day count, the count is derived from
// the date relative to now.
func (req AnalyzeRequest) toUserContext(now time.Time) domain.UserContext {
	days := req.DaysUntilExam
	if days == 0 && req.ExamDate != "" {
		days = domain.DaysUntil(req.ExamDate, now)
	}

	return domain.UserContext{
		StressLevel:       req.StressLevel,
		SleepHours:        req.SleepHours,
		ExerciseFrequency: req.ExerciseFrequency,
		ExamDate:          req.ExamDate,
		DaysUntilExam:     days,
		CurrentStudyHours: req.CurrentStudyHours,
		Subjects:          req.Subjects,
		MonthlyBudget:     req.MonthlyBudget,
		CurrentExpenses:   req.CurrentExpenses,
		FinancialGoals:    req.FinancialGoals,
		Problem:           req.Problem,
	}
}

// AnalysisResponse is the full report returned by the analysis and
// report endpoints.
type AnalysisResponse struct {
	ID                 string    `json:"id"`
	Health             string    `json:"health"`
	Finance            string    `json:"finance"`
	Study              string    `json:"study"`
	Coordination       string    `json:"coordination"`
	CrossDomainInsight string    `json:"cross_domain_insight"`
	Fallback           bool      `json:"fallback"`
	ExecutionMS        int64     `json:"execution_ms"`
	CreatedAt          time.Time `json:"created_at"`
}

// reportToResponse converts a domain report to its API representation.
func reportToResponse(report *domain.AnalysisReport) AnalysisResponse {
	return AnalysisResponse{
		ID:                 report.ID.String(),
		Health:             report.Health,
		Finance:            report.Finance,
		Study:              report.Study,
		Coordination:       report.Coordination,
		CrossDomainInsight: report.CrossDomainInsight,
		Fallback:           report.Fallback,
		ExecutionMS:        report.ExecutionTime.Milliseconds(),
		CreatedAt:          report.CreatedAt,
	}
}
