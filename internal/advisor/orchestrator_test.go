package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
)

const coordinatorRole = "Life Operations Coordinator"

// fakeGenerator records every request and answers via a pluggable
// respond function, so tests can script per-persona outcomes.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []generation.Request
	respond func(generation.Request) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req generation.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeGenerator) roles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles := make([]string, len(f.calls))
	for i, call := range f.calls {
		roles[i] = call.Persona.Role
	}
	return roles
}

func happyResponder(req generation.Request) (string, error) {
	if req.Persona.Role == coordinatorRole {
		return "Unified plan follows.\nBecause sleep drives recall, study blocks move to the morning.", nil
	}
	return "Analysis for role: " + req.Persona.Role, nil
}

func TestRunProducesCompleteReport(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: happyResponder}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Fallback)
	assert.NoError(t, report.Validate())
	assert.Contains(t, report.Health, "Health and Wellness Expert")
	assert.Contains(t, report.Finance, "Personal Finance Advisor")
	assert.Contains(t, report.Study, "Learning and Productivity Specialist")
	assert.Contains(t, report.Coordination, "Unified plan follows.")
	assert.Equal(t, "Because sleep drives recall, study blocks move to the morning.",
		report.CrossDomainInsight)
	assert.Equal(t, StateDone, orch.State())
	assert.Len(t, gen.calls, 4)
}

// The coordinator must not run until all three analyzers have finished,
// sequentially and with the concurrent fan-out alike.
func TestCoordinatorRunsAfterAllAnalyzers(t *testing.T) {
	t.Parallel()

	variants := []struct {
		name string
		opts []Option
	}{
		{name: "sequential"},
		{name: "concurrent", opts: []Option{WithConcurrentAnalyzers()}},
	}

	for _, v := range variants {
		v := v
		t.Run(v.name, func(t *testing.T) {
			t.Parallel()

			gen := &fakeGenerator{respond: happyResponder}
			orch := NewOrchestrator(gen, stressedStudent(), nil, v.opts...)

			_, err := orch.Run(context.Background())
			require.NoError(t, err)

			roles := gen.roles()
			require.Len(t, roles, 4)
			assert.Equal(t, coordinatorRole, roles[3])
			assert.ElementsMatch(t, []string{
				"Health and Wellness Expert",
				"Personal Finance Advisor",
				"Learning and Productivity Specialist",
			}, roles[:3])
		})
	}
}

func TestCoordinatorReceivesAnalyzerResults(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: happyResponder}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	coordCall := gen.calls[3]
	require.Equal(t, coordinatorRole, coordCall.Persona.Role)
	assert.Contains(t, coordCall.Prompt, "Analysis for role: Health and Wellness Expert")
	assert.Contains(t, coordCall.Prompt, "Analysis for role: Personal Finance Advisor")
	assert.Contains(t, coordCall.Prompt, "Analysis for role: Learning and Productivity Specialist")
	assert.Len(t, coordCall.PriorContext, 3)
}

func TestRunFallsBackWhenAnalyzerFails(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(req generation.Request) (string, error) {
		if req.Persona.Role == "Personal Finance Advisor" {
			return "", generation.ErrGenerationFailed
		}
		return happyResponder(req)
	}}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Fallback)
	assert.NoError(t, report.Validate())
	assert.Equal(t, StateDone, orch.State())
	assert.NotContains(t, gen.roles(), coordinatorRole,
		"coordination must be skipped once an analyzer fails")
}

func TestRunFallsBackWhenCoordinatorFails(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(req generation.Request) (string, error) {
		if req.Persona.Role == coordinatorRole {
			return "", generation.ErrTransientFailure
		}
		return happyResponder(req)
	}}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Fallback)
	assert.NoError(t, report.Validate())
}

// A total backend outage still yields the full synthesized report with
// the fixed arithmetic and the high-stress acknowledgment in place.
func TestRunFallbackEndToEnd(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(generation.Request) (string, error) {
		return "", generation.ErrGenerationFailed
	}}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Fallback)
	assert.Contains(t, report.Finance, "Aim to save about $240 each month")
	assert.Contains(t, report.CrossDomainInsight, "stress is high (8/10)")
	assert.Contains(t, report.Coordination, "reduce study hours")
	assert.Len(t, gen.calls, 1, "the first failure aborts the stage")
}

func TestRunTotalityOnEmptyContext(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(generation.Request) (string, error) {
		return "", generation.ErrGenerationFailed
	}}
	orch := NewOrchestrator(gen, domain.UserContext{}, nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.NoError(t, report.Validate())
	for _, section := range []string{
		report.Health, report.Finance, report.Study,
		report.Coordination, report.CrossDomainInsight,
	} {
		assert.NotEmpty(t, strings.TrimSpace(section))
	}
}

func TestRunIsSingleUse(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: happyResponder}
	orch := NewOrchestrator(gen, stressedStudent(), nil)

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestNewOrchestratorClampsContext(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: happyResponder}
	orch := NewOrchestrator(gen, domain.UserContext{StressLevel: 15, SleepHours: 30}, nil)

	report, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, report.UserContext.StressLevel)
	assert.Equal(t, 24, report.UserContext.SleepHours)
}

func TestStateStartsIdle(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: happyResponder}
	orch := NewOrchestrator(gen, domain.UserContext{}, nil)

	assert.Equal(t, StateIdle, orch.State())
}

func TestRunFallbackIsDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	failing := func(generation.Request) (string, error) {
		return "", errors.New("backend down")
	}

	first, err := NewOrchestrator(&fakeGenerator{respond: failing}, stressedStudent(), nil).
		Run(context.Background())
	require.NoError(t, err)
	second, err := NewOrchestrator(&fakeGenerator{respond: failing}, stressedStudent(), nil).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Health, second.Health)
	assert.Equal(t, first.Finance, second.Finance)
	assert.Equal(t, first.Study, second.Study)
	assert.Equal(t, first.Coordination, second.Coordination)
	assert.Equal(t, first.CrossDomainInsight, second.CrossDomainInsight)
	assert.NotEqual(t, first.ID, second.ID)
}
