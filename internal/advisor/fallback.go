package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lifeops/lifeops-api/internal/domain"
)

// Fixed allocation ratios for the fallback finance plan.
const (
	savingsRatio   = 0.20
	wellnessRatio  = 0.10
	emergencyRatio = 0.10
	emergencyCap   = 500.0
)

// Defaults used when the context leaves the study fields blank.
const (
	defaultExamLeadDays  = 7
	defaultStudyHours    = 3
	taperRatio           = 0.7
	taperStartBeforeExam = 3
)

// FallbackSections synthesizes all five report sections purely from the
// numeric user context. The output contains no model text, no dates and
// no randomness: the same context always yields byte-identical sections,
// so a failed backend still produces a stable, complete report.
func FallbackSections(userCtx domain.UserContext) domain.ReportSections {
	return domain.ReportSections{
		Health:             fallbackHealth(userCtx),
		Finance:            fallbackFinance(userCtx),
		Study:              fallbackStudy(userCtx),
		Coordination:       fallbackCoordination(userCtx),
		CrossDomainInsight: defaultInsight(userCtx),
	}
}

func fallbackHealth(uc domain.UserContext) string {
	var b strings.Builder
	b.WriteString("Health Assessment\n\n")

	switch {
	case uc.HighStress():
		fmt.Fprintf(&b, "Your stress is high (%d/10). Bringing it down is priority one: schedule two 10-minute breathing breaks daily and a 20-minute walk after your longest work block.\n", uc.StressLevel)
	case uc.HasStress():
		fmt.Fprintf(&b, "Your stress level (%d/10) is manageable. Keep one daily decompression habit, such as a short walk or journaling, to hold it there.\n", uc.StressLevel)
	default:
		b.WriteString("No stress level was provided. Track it for a week on a 1-10 scale so the next review has a baseline.\n")
	}

	if uc.SleepHours > 0 && uc.SleepHours < 7 {
		fmt.Fprintf(&b, "You are sleeping %d hours per night. Move toward 7-8 hours; each added hour improves recall and decision quality the next day.\n", uc.SleepHours)
	} else if uc.SleepHours >= 7 {
		fmt.Fprintf(&b, "Your sleep (%d hours) is on target. Protect the same bedtime even during busy weeks.\n", uc.SleepHours)
	} else {
		b.WriteString("No sleep data was provided. Aim for 7-8 hours and log actual hours for a week.\n")
	}

	if uc.ExerciseFrequency != "" {
		fmt.Fprintf(&b, "Current exercise: %s. Keep the sessions you already have and add one short mobility break on study-heavy days.\n", uc.ExerciseFrequency)
	} else {
		b.WriteString("No exercise routine was provided. Start with three 20-minute sessions per week; consistency beats intensity.\n")
	}

	if uc.MonthlyBudget > 0 {
		wellness := uc.MonthlyBudget * wellnessRatio
		fmt.Fprintf(&b, "Reserve about $%s (10%% of your monthly budget) for wellness: decent food, and anything that reliably lowers your stress.\n", humanize.Commaf(wellness))
	}

	return b.String()
}

func fallbackFinance(uc domain.UserContext) string {
	var b strings.Builder
	b.WriteString("Financial Plan\n\n")

	if uc.MonthlyBudget <= 0 {
		b.WriteString("No monthly budget was provided. Before any plan can be concrete, track one month of income and spending.\n")
		b.WriteString("As a starting rule, direct 20% of whatever comes in to savings and keep fixed costs under half of income.\n")
		if uc.FinancialGoals != "" {
			fmt.Fprintf(&b, "Stated goal: %s. Revisit it once the budget baseline exists.\n", uc.FinancialGoals)
		}
		return b.String()
	}

	savings := uc.MonthlyBudget * savingsRatio
	emergency := uc.MonthlyBudget * emergencyRatio
	if emergency > emergencyCap {
		emergency = emergencyCap
	}

	fmt.Fprintf(&b, "Your monthly budget is $%s.", humanize.Commaf(uc.MonthlyBudget))
	if uc.CurrentExpenses > 0 {
		remaining := uc.MonthlyBudget - uc.CurrentExpenses
		fmt.Fprintf(&b, " Current expenses run $%s, leaving $%s of headroom.", humanize.Commaf(uc.CurrentExpenses), humanize.Commaf(remaining))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Aim to save about $%s each month (20%% of your budget).\n", humanize.Commaf(savings))
	fmt.Fprintf(&b, "Build an emergency buffer of $%s per month until it covers three months of expenses.\n", humanize.Commaf(emergency))
	fmt.Fprintf(&b, "Keep roughly $%s (10%%) available for health and wellness spending; skimping there usually costs more later.\n", humanize.Commaf(uc.MonthlyBudget*wellnessRatio))

	if uc.FinancialGoals != "" {
		fmt.Fprintf(&b, "Stated goal: %s. The savings line above is the vehicle for it.\n", uc.FinancialGoals)
	}

	return b.String()
}

func fallbackStudy(uc domain.UserContext) string {
	var b strings.Builder
	b.WriteString("Study Plan\n\n")

	days := uc.DaysUntilExam
	if days <= 0 {
		days = defaultExamLeadDays
		b.WriteString("No exam date was provided; the plan below assumes a 7-day horizon.\n")
	} else {
		fmt.Fprintf(&b, "Your exam is %d days away.\n", days)
	}

	hours := uc.CurrentStudyHours
	if hours <= 0 {
		hours = defaultStudyHours
	}

	if uc.Subjects != "" {
		fmt.Fprintf(&b, "Subjects: %s. Rotate them daily rather than blocking one subject per day.\n", uc.Subjects)
	}

	b.WriteString("\nSchedule:\n")
	for day := 1; day <= days; day++ {
		b.WriteString(studyDayLine(day, days, hours))
		b.WriteString("\n")
	}
	b.WriteString("\nThe final days taper on purpose: consolidation and sleep move more marks than last-minute volume.\n")

	return b.String()
}

// studyDayLine renders one schedule line. Full load holds until three
// days before the exam, then drops to 70%, and the last day is a fixed
// two-hour light review.
func studyDayLine(day, totalDays, fullHours int) string {
	switch {
	case day == totalDays:
		return fmt.Sprintf("Day %d: 2 hours, light review only", day)
	case day > totalDays-taperStartBeforeExam:
		tapered := float64(fullHours) * taperRatio
		return fmt.Sprintf("Day %d: %s hours, focused practice", day, formatHours(tapered))
	default:
		return fmt.Sprintf("Day %d: %d hours", day, fullHours)
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func fallbackCoordination(uc domain.UserContext) string {
	var b strings.Builder
	b.WriteString("Coordinated Action Plan\n\n")

	if uc.Problem != "" {
		fmt.Fprintf(&b, "Primary concern: %s.\n", uc.Problem)
	}

	if uc.HighStress() {
		fmt.Fprintf(&b, "Because stress is high (%d/10), reduce study hours slightly and insert recovery breaks between study blocks; a calmer hour retains more than an exhausted two.\n", uc.StressLevel)
	} else {
		b.WriteString("Keep study blocks in the morning when focus is highest, and place exercise between study and evening wind-down.\n")
	}

	if uc.MonthlyBudget > 0 {
		fmt.Fprintf(&b, "Hold the savings target of $%s per month while the study push is on; the plan needs no extra spending.\n", humanize.Commaf(uc.MonthlyBudget*savingsRatio))
	}

	if uc.DaysUntilExam > 0 {
		fmt.Fprintf(&b, "Until the exam in %d days, treat sleep as fixed and study hours as the adjustable variable, never the reverse.\n", uc.DaysUntilExam)
	}

	b.WriteString("\nWeekly rhythm: study in the planned blocks, one rest day with no study, and a ten-minute Sunday review of budget and schedule for the week ahead.\n")

	return b.String()
}
