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

// Coordinator merges the three domain analyses into one unified plan.
type Coordinator struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewCoordinator creates a Coordinator backed by the given generator.
func NewCoordinator(generator generation.Generator, log *slog.Logger) *Coordinator {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Coordinator{
		generator: generator,
		logger:    log.With(slog.String("component", "coordinator")),
	}
}

// Coordinate builds the coordination prompt from the user context and
// the three domain results and runs it against the backend. The results
// are embedded in the prompt verbatim and also passed as prior context,
// so the model treats them as given facts rather than suggestions.
// Failures propagate to the orchestrator without retry.
func (c *Coordinator) Coordinate(
	ctx context.Context,
	userCtx domain.UserContext,
	health, finance, study string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	task := prompt.BuildCoordination(userCtx, health, finance, study)

	log.Debug("running coordination",
		slog.Int("prompt_length", len(task.Prompt)))

	result, err := c.generator.Generate(ctx, generation.Request{
		Persona:       task.Persona,
		Prompt:        withExpectedOutput(task),
		PriorContext:  []string{health, finance, study},
		MaxIterations: task.MaxIterations,
		RatePerMinute: task.RatePerMinute,
	})
	if err != nil {
		log.Warn("coordination failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("coordination failed: %w", err)
	}

	return result, nil
}
