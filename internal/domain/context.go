package domain

import "time"

// Clamp bounds for UserContext numeric fields.
const (
	MinStressLevel = 1
	MaxStressLevel = 10
	MaxDailyHours  = 24
)

// UserContext is the snapshot of user-entered life context for a single
// advisor session. It is built once by the input layer and consumed
// read-only by every component downstream; nothing mutates it after
// Clamped has been applied.
//
// Zero values mean "not specified": the prompt layer renders a
// placeholder for them rather than treating them as real measurements.
type UserContext struct {
	StressLevel       int     `json:"stress_level"`
	SleepHours        int     `json:"sleep_hours"`
	ExerciseFrequency string  `json:"exercise_frequency"`
	ExamDate          string  `json:"exam_date"`
	DaysUntilExam     int     `json:"days_until_exam"`
	CurrentStudyHours int     `json:"current_study_hours"`
	Subjects          string  `json:"subjects"`
	MonthlyBudget     float64 `json:"monthly_budget"`
	CurrentExpenses   float64 `json:"current_expenses"`
	FinancialGoals    string  `json:"financial_goals"`
	Problem           string  `json:"problem"`
}

// Clamped returns a copy of the context with every numeric field forced
// into its valid range: stress in [1,10], daily hours in [0,24], money
// and day counts non-negative. A zero stress level is preserved as-is
// because it means the field was never supplied.
func (c UserContext) Clamped() UserContext {
	out := c

	if c.StressLevel != 0 {
		out.StressLevel = clampInt(c.StressLevel, MinStressLevel, MaxStressLevel)
	}
	out.SleepHours = clampInt(c.SleepHours, 0, MaxDailyHours)
	out.CurrentStudyHours = clampInt(c.CurrentStudyHours, 0, MaxDailyHours)

	if c.DaysUntilExam < 0 {
		out.DaysUntilExam = 0
	}
	if c.MonthlyBudget < 0 {
		out.MonthlyBudget = 0
	}
	if c.CurrentExpenses < 0 {
		out.CurrentExpenses = 0
	}

	return out
}

// HasStress reports whether a stress level was supplied.
func (c UserContext) HasStress() bool {
	return c.StressLevel > 0
}

// HighStress reports whether the supplied stress level is above 7,
// the threshold at which the advisor prioritizes stress reduction
// over everything else.
func (c UserContext) HighStress() bool {
	return c.StressLevel > 7
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DaysUntil returns the number of whole days from now until the target
// date in YYYY-MM-DD form. Unparseable or past dates yield 0.
func DaysUntil(target string, now time.Time) int {
	t, err := time.Parse("2006-01-02", target)
	if err != nil {
		return 0
	}
	days := int(t.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FormatDate renders a YYYY-MM-DD date for display, e.g. "January 2, 2006".
// Dates that do not parse are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
