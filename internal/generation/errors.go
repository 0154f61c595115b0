package generation

import "errors"

// Common errors returned by generation backends. All of them count as a
// generation failure at the orchestrator boundary; the distinctions
// exist for logging and backend diagnostics only.
var (
	// ErrGenerationFailed is returned when generation fails for any general reason.
	ErrGenerationFailed = errors.New("generation backend did not return usable text")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for network or quota errors.
	ErrTransientFailure = errors.New("transient error during text generation")

	// ErrRateLimited is returned when the client-side call budget is exhausted
	// before the request could be sent.
	ErrRateLimited = errors.New("generation rate limit exceeded")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
