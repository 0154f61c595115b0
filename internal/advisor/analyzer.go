package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/platform/logger"
	"github.com/lifeops/lifeops-api/internal/prompt"
)

// Analyzer runs one domain's analysis against the generation backend.
// The three variants (health, finance, study) differ only in persona and
// prompt template, never in control flow, so a single type parameterized
// by domain covers the closed set.
type Analyzer struct {
	domain    domain.Domain
	generator generation.Generator
	logger    *slog.Logger
}

// NewAnalyzer creates the analyzer for the given domain.
func NewAnalyzer(d domain.Domain, generator generation.Generator, log *slog.Logger) (*Analyzer, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Analyzer{
		domain:    d,
		generator: generator,
		logger:    log.With(slog.String("component", d.String()+"_analyzer")),
	}, nil
}

// Analyze executes the task against the backend and returns the analysis
// text. It does not retry: failures propagate to the orchestrator, which
// owns recovery via fallback synthesis.
func (a *Analyzer) Analyze(ctx context.Context, task prompt.Task) (string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	log.Debug("running domain analysis",
		slog.String("domain", a.domain.String()),
		slog.Int("prompt_length", len(task.Prompt)))

	result, err := a.generator.Generate(ctx, generation.Request{
		Persona:       task.Persona,
		Prompt:        withExpectedOutput(task),
		MaxIterations: task.MaxIterations,
		RatePerMinute: task.RatePerMinute,
	})
	if err != nil {
		log.Warn("domain analysis failed",
			slog.String("domain", a.domain.String()),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%s analysis failed: %w", a.domain, err)
	}

	log.Debug("domain analysis complete",
		slog.String("domain", a.domain.String()),
		slog.Int("result_length", len(result)))
	return result, nil
}

// withExpectedOutput appends the expected-output description so the
// backend knows the shape the analysis should come back in.
func withExpectedOutput(task prompt.Task) string {
	if task.ExpectedOutput == "" {
		return task.Prompt
	}
	return task.Prompt + "\n\nExpected output:\n" + task.ExpectedOutput
}
