package advisor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/platform/logger"
	"github.com/lifeops/lifeops-api/internal/prompt"
)

// State identifies where an orchestration run is in its lifecycle.
type State string

// Run lifecycle. The happy path walks Idle through the three building
// states to Coordinating, Extracting and Done; any generation failure
// branches through Error to Fallback and still ends in Done.
const (
	StateIdle            State = "idle"
	StateBuildingHealth  State = "building_health"
	StateBuildingFinance State = "building_finance"
	StateBuildingStudy   State = "building_study"
	StateCoordinating    State = "coordinating"
	StateExtracting      State = "extracting"
	StateError           State = "error"
	StateFallback        State = "fallback"
	StateDone            State = "done"
)

var buildingStates = map[domain.Domain]State{
	domain.DomainHealth:  StateBuildingHealth,
	domain.DomainFinance: StateBuildingFinance,
	domain.DomainStudy:   StateBuildingStudy,
}

// ErrAlreadyRun is returned when Run is called a second time on the
// same Orchestrator. Instances are single-use.
var ErrAlreadyRun = errors.New("orchestrator has already run")

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrentAnalyzers runs the three domain analyses as a
// fan-out/fan-in instead of sequentially. Coordination still waits for
// all three to finish, so the report contract is unchanged; only wall
// time differs.
func WithConcurrentAnalyzers() Option {
	return func(o *Orchestrator) {
		o.concurrent = true
	}
}

// Orchestrator drives one advisor run: three domain analyses, one
// coordination pass, insight extraction, and fallback synthesis when
// the backend fails. It is scoped to a single user context and may be
// run exactly once.
type Orchestrator struct {
	userCtx     domain.UserContext
	analyzers   map[domain.Domain]*Analyzer
	coordinator *Coordinator
	logger      *slog.Logger
	concurrent  bool

	started atomic.Bool
	mu      sync.Mutex
	state   State
}

// NewOrchestrator creates an Orchestrator for the given user context.
// The context is clamped to its valid ranges here, so every downstream
// consumer sees normalized values.
func NewOrchestrator(
	generator generation.Generator,
	userCtx domain.UserContext,
	log *slog.Logger,
	opts ...Option,
) *Orchestrator {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	clamped := userCtx.Clamped()

	analyzers := make(map[domain.Domain]*Analyzer, len(domain.Domains))
	for _, d := range domain.Domains {
		analyzer, err := NewAnalyzer(d, generator, log)
		if err != nil {
			// Domains is a fixed valid set, so this cannot happen.
			panic(err)
		}
		analyzers[d] = analyzer
	}

	o := &Orchestrator{
		userCtx:     clamped,
		analyzers:   analyzers,
		coordinator: NewCoordinator(generator, log),
		logger:      log.With(slog.String("component", "orchestrator")),
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State reports the current lifecycle state. Safe to call from other
// goroutines while Run is in flight.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Run executes the full pipeline and always returns a complete
// five-section report: generation failures are logged and absorbed by
// the fallback synthesis, never surfaced as a missing section. The only
// errors Run itself returns are reuse of the instance and context
// cancellation before any work completed usefully.
func (o *Orchestrator) Run(ctx context.Context) (*domain.AnalysisReport, error) {
	if !o.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	start := time.Now()
	log := logger.FromContextOrDefault(ctx, o.logger)

	log.Info("starting advisor run",
		slog.Bool("concurrent_analyzers", o.concurrent))

	sections, fallback := o.generate(ctx, log)

	report, err := domain.NewAnalysisReport(o.userCtx, sections, fallback, time.Since(start))
	if err != nil && !fallback {
		// The generated text failed report validation; the fallback
		// templates are always complete, so a second attempt with them
		// preserves the totality contract.
		log.Warn("generated report invalid, synthesizing fallback",
			slog.String("error", err.Error()))
		o.setState(StateFallback)
		report, err = domain.NewAnalysisReport(o.userCtx, FallbackSections(o.userCtx), true, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	o.setState(StateDone)
	log.Info("advisor run complete",
		slog.String("report_id", report.ID.String()),
		slog.Bool("fallback", report.Fallback),
		slog.Duration("execution_time", report.ExecutionTime))

	return report, nil
}

// generate runs the analyzer and coordination stages, degrading to the
// fallback sections on any failure. The boolean reports whether the
// fallback path was taken.
func (o *Orchestrator) generate(ctx context.Context, log *slog.Logger) (domain.ReportSections, bool) {
	results, err := o.analyze(ctx)
	if err != nil {
		return o.degrade(log, err), true
	}

	o.setState(StateCoordinating)
	coordination, err := o.coordinator.Coordinate(ctx, o.userCtx,
		results[domain.DomainHealth],
		results[domain.DomainFinance],
		results[domain.DomainStudy])
	if err != nil {
		return o.degrade(log, err), true
	}

	o.setState(StateExtracting)
	insight := ExtractInsight(coordination, o.userCtx)

	return domain.ReportSections{
		Health:             results[domain.DomainHealth],
		Finance:            results[domain.DomainFinance],
		Study:              results[domain.DomainStudy],
		Coordination:       coordination,
		CrossDomainInsight: insight,
	}, false
}

// degrade records the failure and synthesizes the fallback sections.
// The fallback insight comes straight from the context template, not
// from extraction, so it is byte-stable for a given context.
func (o *Orchestrator) degrade(log *slog.Logger, cause error) domain.ReportSections {
	o.setState(StateError)
	log.Warn("generation failed, synthesizing fallback report",
		slog.String("error", cause.Error()))
	o.setState(StateFallback)
	return FallbackSections(o.userCtx)
}

// analyze runs the three domain analyses and returns their texts keyed
// by domain. The first failure aborts the whole stage: a report mixing
// generated and synthesized domain sections would be harder to reason
// about than a uniformly synthesized one.
func (o *Orchestrator) analyze(ctx context.Context) (map[domain.Domain]string, error) {
	if o.concurrent {
		return o.analyzeConcurrent(ctx)
	}

	results := make(map[domain.Domain]string, len(domain.Domains))
	for _, d := range o.runOrder() {
		o.setState(buildingStates[d])

		task, err := prompt.Build(d, o.userCtx)
		if err != nil {
			return nil, err
		}
		text, err := o.analyzers[d].Analyze(ctx, task)
		if err != nil {
			return nil, err
		}
		results[d] = text
	}
	return results, nil
}

// analyzeConcurrent fans the three analyses out to goroutines and waits
// for all of them. States are advanced at launch time from the calling
// goroutine, so State() still moves through the building states in
// order even though completions interleave.
func (o *Orchestrator) analyzeConcurrent(ctx context.Context) (map[domain.Domain]string, error) {
	order := o.runOrder()

	var wg sync.WaitGroup
	texts := make([]string, len(order))
	errs := make([]error, len(order))

	for i, d := range order {
		o.setState(buildingStates[d])

		task, err := prompt.Build(d, o.userCtx)
		if err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(i int, d domain.Domain, task prompt.Task) {
			defer wg.Done()
			texts[i], errs[i] = o.analyzers[d].Analyze(ctx, task)
		}(i, d, task)
	}
	wg.Wait()

	results := make(map[domain.Domain]string, len(order))
	for i, d := range order {
		if errs[i] != nil {
			return nil, errs[i]
		}
		results[d] = texts[i]
	}
	return results, nil
}

func (o *Orchestrator) runOrder() []domain.Domain {
	return []domain.Domain{domain.DomainHealth, domain.DomainFinance, domain.DomainStudy}
}
