package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/lifeops/lifeops-api/internal/config"
	"github.com/lifeops/lifeops-api/internal/generation"
)

// defaultRatePerMinute is used when a request carries no explicit budget.
const defaultRatePerMinute = 15

// modelCaller abstracts the genai client's content-generation call so
// tests can substitute a stub without network access.
type modelCaller interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// genaiModels adapts *genai.Client to the modelCaller interface.
type genaiModels struct {
	client *genai.Client
}

func (m genaiModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	return m.client.Models.GenerateContent(ctx, model, contents, cfg)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	logger *slog.Logger
	config config.LLMConfig
	caller modelCaller

	// limiters holds one token bucket per requests-per-minute budget.
	// Personas share a bucket when they declare the same budget, so the
	// process-wide call rate stays within the strictest declared limit.
	mu       sync.Mutex
	limiters map[int]*rate.Limiter
}

// Verify interface compliance at compile time.
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator from the given LLM
// configuration. The API backend selection is explicit here rather than
// inherited from process environment variables.
//
// Returns an error wrapping generation.ErrInvalidConfig if the
// configuration is unusable or the client cannot be constructed.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:   logger.With(slog.String("component", "gemini_generator")),
		config:   cfg,
		caller:   genaiModels{client: client},
		limiters: make(map[int]*rate.Limiter),
	}, nil
}

// Generate produces text for the given request.
//
// The call is bounded three ways: the persona's requests-per-minute
// budget gates each backend call, the configured timeout bounds each
// call's duration, and MaxIterations bounds how often an empty or
// unparseable candidate is regenerated. API errors are returned
// immediately without retry; the orchestrator's fallback path is the
// recovery mechanism, not this adapter.
func (g *GeminiGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	maxIterations := req.MaxIterations
	if maxIterations < 1 {
		maxIterations = 1
	}

	contents := genai.Text(userText(req))
	genCfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(g.config.Temperature)),
		SystemInstruction: genai.NewContentFromText(personaInstruction(req.Persona), genai.RoleUser),
	}

	limiter := g.limiterFor(req.RatePerMinute)

	var lastErr error
	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrRateLimited, err)
		}

		g.logger.InfoContext(ctx, "calling Gemini API",
			slog.String("model", g.config.ModelName),
			slog.String("persona", req.Persona.Role),
			slog.Int("iteration", iteration),
			slog.Int("max_iterations", maxIterations))

		callCtx, cancel := context.WithTimeout(ctx, time.Duration(g.config.TimeoutSeconds)*time.Second)
		resp, err := g.caller.GenerateContent(callCtx, g.config.ModelName, contents, genCfg)
		cancel()

		if err != nil {
			g.logger.ErrorContext(ctx, "Gemini API call failed",
				slog.String("persona", req.Persona.Role),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}

		text, err := extractText(resp)
		if err != nil {
			if errors.Is(err, generation.ErrContentBlocked) {
				return "", err
			}
			// An empty or degenerate candidate is worth one more pass
			// within the iteration budget.
			g.logger.WarnContext(ctx, "unusable Gemini candidate, regenerating",
				slog.String("persona", req.Persona.Role),
				slog.Int("iteration", iteration),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}

		g.logger.InfoContext(ctx, "Gemini API call successful",
			slog.String("persona", req.Persona.Role),
			slog.Int("iteration", iteration),
			slog.Int("text_length", len(text)))
		return text, nil
	}

	return "", fmt.Errorf("%w: no usable text after %d iterations: %v",
		generation.ErrGenerationFailed, maxIterations, lastErr)
}

// limiterFor returns the shared limiter for the given budget, creating
// it on first use. A non-positive budget maps to the default.
func (g *GeminiGenerator) limiterFor(ratePerMinute int) *rate.Limiter {
	if ratePerMinute <= 0 {
		ratePerMinute = defaultRatePerMinute
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	limiter, ok := g.limiters[ratePerMinute]
	if !ok {
		// Allow an initial burst of one: the first call in a run should
		// never wait.
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1)
		g.limiters[ratePerMinute] = limiter
	}
	return limiter
}

// personaInstruction renders a persona as a system instruction.
func personaInstruction(p generation.Persona) string {
	var sb strings.Builder
	if p.Role != "" {
		fmt.Fprintf(&sb, "You are %s.", p.Role)
	}
	if p.Backstory != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Backstory)
	}
	if p.Goal != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "Your goal: %s", p.Goal)
	}
	return sb.String()
}

// userText assembles the user-visible prompt, prefixing prior step
// results so the model treats them as given facts.
func userText(req generation.Request) string {
	if len(req.PriorContext) == 0 {
		return req.Prompt
	}

	var sb strings.Builder
	sb.WriteString("Context from earlier analysis steps:\n\n")
	for i, prior := range req.PriorContext {
		fmt.Fprintf(&sb, "--- Context %d ---\n%s\n\n", i+1, prior)
	}
	sb.WriteString(req.Prompt)
	return sb.String()
}

// extractText pulls the generated text out of a Gemini response,
// classifying degenerate responses into the generation error taxonomy.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in candidate", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
