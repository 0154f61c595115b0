package generation

import "context"

// Persona is the fixed role description attached to a generation call
// to bias the output style. Personas form a closed set (one per analysis
// domain plus the coordinator) defined in the prompt package.
type Persona struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// Request carries everything a backend needs for one generation call.
type Request struct {
	// Persona biases the output style; see Persona.
	Persona Persona

	// Prompt is the fully rendered task description.
	Prompt string

	// PriorContext holds earlier results the backend should treat as
	// given facts, in order. Used by the coordination step to embed the
	// three domain analyses.
	PriorContext []string

	// MaxIterations bounds the backend's internal refinement loop.
	MaxIterations int

	// RatePerMinute bounds the call rate for this persona's budget.
	// Enforced by the backend adapter, not the caller.
	RatePerMinute int
}

// Generator defines the boundary between the advisor core and the
// external text-generation service. Any backend (remote LLM API or
// local model) satisfying this signature is acceptable.
//
// Generate returns the produced text, or an error from this package's
// taxonomy when the backend did not return usable text. Implementations
// must not retry internally beyond the request's iteration budget: the
// orchestrator deliberately trades a generated answer for a guaranteed
// deterministic fallback rather than adding retry complexity.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
