package advisor

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lifeops/lifeops-api/internal/domain"
)

// connectives signal causal or contrastive reasoning. A coordination
// line carrying one of these is treated as a cross-domain insight.
var connectives = []string{
	"because", "therefore", "since", "thus", "consequently",
	"however", "although", "while", "whereas", "despite",
}

// domainPairs are co-occurrence heuristics: a line that mentions the
// subject together with any of the paired terms links two life domains
// even without an explicit connective.
var domainPairs = []struct {
	subject string
	paired  []string
}{
	{"stress", []string{"study", "finance"}},
	{"budget", []string{"health", "study"}},
	{"health", []string{"study", "finance"}},
}

const (
	insightSeparator = " • "
	maxInsightLines  = 3
)

// ExtractInsight mines the coordination text for lines that express
// cross-domain reasoning. Matching is case-insensitive and line-based;
// a line can match both the connective rule and a co-occurrence rule
// and then appears twice. At most three matches are kept, joined with
// a bullet separator. When nothing matches, including on empty input,
// the extractor degrades to a context-derived template, so the insight
// section is never empty.
func ExtractInsight(coordination string, userCtx domain.UserContext) string {
	var matches []string

	for _, line := range strings.Split(coordination, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		if hasConnective(lower) {
			matches = append(matches, trimmed)
		}
		if hasDomainPair(lower) {
			matches = append(matches, trimmed)
		}
	}

	if len(matches) > maxInsightLines {
		matches = matches[:maxInsightLines]
	}
	if len(matches) > 0 {
		return strings.Join(matches, insightSeparator)
	}
	return defaultInsight(userCtx)
}

func hasConnective(lower string) bool {
	for _, keyword := range connectives {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func hasDomainPair(lower string) bool {
	for _, pair := range domainPairs {
		if !strings.Contains(lower, pair.subject) {
			continue
		}
		for _, other := range pair.paired {
			if strings.Contains(lower, other) {
				return true
			}
		}
	}
	return false
}

// defaultInsight renders the context-derived template used when
// extraction finds nothing and on the fallback path. Branch order is
// fixed: high stress wins over a tight budget, which wins over an
// imminent exam.
func defaultInsight(userCtx domain.UserContext) string {
	switch {
	case userCtx.HighStress():
		return fmt.Sprintf(
			"Your stress is high (%d/10), so stress reduction should come before extra study hours or new financial commitments.",
			userCtx.StressLevel)
	case userCtx.MonthlyBudget > 0 && userCtx.MonthlyBudget < 1500:
		return fmt.Sprintf(
			"Your budget ($%s/month) is tight, so favor low-cost health and study choices that protect both wellbeing and savings.",
			humanize.Commaf(userCtx.MonthlyBudget))
	case userCtx.DaysUntilExam > 0 && userCtx.DaysUntilExam < 7:
		return fmt.Sprintf(
			"Your exam is only %d days away, so study takes priority this week while sleep and spending hold steady.",
			userCtx.DaysUntilExam)
	default:
		return "Your life domains are in reasonable balance; small consistent habits in health, money, and study will reinforce each other."
	}
}
