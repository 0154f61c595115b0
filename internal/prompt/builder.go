package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Placeholder text used when a context field was not supplied.
const (
	notSpecified = "Not specified"
	noProblem    = "No specific problem mentioned"
)

// Task pairs a persona, a fully rendered prompt, and the expected-output
// description for one generation step. A Task is created by this package,
// consumed exactly once by the advisor, and then discarded.
type Task struct {
	Domain         domain.Domain
	Persona        generation.Persona
	Prompt         string
	ExpectedOutput string
	MaxIterations  int
	RatePerMinute  int
}

// expectedOutputs describes the shape each analysis should come back in.
// Mirrors the section scaffolding the prompts ask for.
var expectedOutputs = map[domain.Domain]string{
	domain.DomainHealth: `A comprehensive health analysis with:
1. Risk Assessment (Low/Medium/High)
2. Immediate Actions (next 24 hours)
3. Short-term Plan (next week)
4. Long-term Recommendations
5. Cross-domain Considerations`,
	domain.DomainFinance: `A detailed financial plan with:
1. Budget Allocation Breakdown
2. Expense Optimization Tips
3. Savings Strategy
4. Investment Recommendations (if any)
5. Cross-domain Financial Implications`,
	domain.DomainStudy: `A comprehensive study plan with:
1. Daily/Weekly Schedule
2. Learning Technique Recommendations
3. Progress Tracking Methods
4. Break/Burnout Prevention Strategy
5. Resource Recommendations
6. Cross-domain Considerations`,
}

const coordinationExpectedOutput = `A comprehensive life coordination plan with:
1. Cross-Domain Insights & Reasoning
2. Priority Matrix (Urgent/Important)
3. Unified Weekly Schedule
4. Trade-off Decisions Made
5. Specific Action Items for Each Domain
6. Success Metrics & Progress Tracking`

// analyzerData feeds the three per-domain templates. Every field is
// pre-rendered display text so the templates stay free of logic and
// absent fields degrade to placeholders instead of errors.
type analyzerData struct {
	StressLevel       string
	SleepHours        string
	ExerciseFrequency string
	ExamDate          string
	DaysUntilExam     int
	CurrentStudyHours string
	Subjects          string
	MonthlyBudget     string
	CurrentExpenses   string
	FinancialGoals    string
	Problem           string
}

type coordinationData struct {
	Problem string
	Health  string
	Finance string
	Study   string
}

// Build renders the analysis task for the given domain from the user
// context. It is a pure function of its inputs and fails only on an
// unknown domain; missing context fields render as placeholders.
func Build(d domain.Domain, userCtx domain.UserContext) (Task, error) {
	spec, ok := personas.Analyzers[d.String()]
	if !ok {
		return Task{}, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, d.String()+".tmpl", newAnalyzerData(userCtx)); err != nil {
		// Templates are embedded and parsed at init; execution over a
		// logic-free data struct cannot fail in practice.
		return Task{}, fmt.Errorf("failed to render %s prompt: %w", d, err)
	}

	return Task{
		Domain:         d,
		Persona:        spec.persona(),
		Prompt:         buf.String(),
		ExpectedOutput: expectedOutputs[d],
		MaxIterations:  spec.MaxIterations,
		RatePerMinute:  spec.RatePerMinute,
	}, nil
}

// BuildCoordination renders the coordination task. The three domain
// results are embedded verbatim; the user's stated problem frames them.
func BuildCoordination(userCtx domain.UserContext, health, finance, study string) Task {
	data := coordinationData{
		Problem: textOrDefault(userCtx.Problem, "General life optimization"),
		Health:  health,
		Finance: finance,
		Study:   study,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "coordination.tmpl", data); err != nil {
		// Unreachable for the same reason as in Build; keep the prompt
		// non-empty even then.
		buf.Reset()
		buf.WriteString("Integrate the health, finance, and study analyses into one plan for: ")
		buf.WriteString(data.Problem)
	}

	return Task{
		Persona:        personas.Coordinator.persona(),
		Prompt:         buf.String(),
		ExpectedOutput: coordinationExpectedOutput,
		MaxIterations:  personas.Coordinator.MaxIterations,
		RatePerMinute:  personas.Coordinator.RatePerMinute,
	}
}

func newAnalyzerData(userCtx domain.UserContext) analyzerData {
	return analyzerData{
		StressLevel:       intOrDefault(userCtx.StressLevel),
		SleepHours:        intOrDefault(userCtx.SleepHours),
		ExerciseFrequency: textOrDefault(userCtx.ExerciseFrequency, notSpecified),
		ExamDate:          dateOrDefault(userCtx.ExamDate),
		DaysUntilExam:     userCtx.DaysUntilExam,
		CurrentStudyHours: intOrDefault(userCtx.CurrentStudyHours),
		Subjects:          textOrDefault(userCtx.Subjects, notSpecified),
		MonthlyBudget:     moneyOrDefault(userCtx.MonthlyBudget),
		CurrentExpenses:   moneyOrDefault(userCtx.CurrentExpenses),
		FinancialGoals:    textOrDefault(userCtx.FinancialGoals, notSpecified),
		Problem:           textOrDefault(userCtx.Problem, noProblem),
	}
}

func textOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOrDefault(v int) string {
	if v <= 0 {
		return notSpecified
	}
	return fmt.Sprintf("%d", v)
}

func moneyOrDefault(v float64) string {
	if v <= 0 {
		return notSpecified
	}
	return humanize.Commaf(v)
}

func dateOrDefault(date string) string {
	if date == "" {
		return notSpecified
	}
	return domain.FormatDate(date)
}
