package config

// PlaceholderAPIKey is the well-known placeholder value shipped in
// example env files. A key equal to it is treated as missing so the
// server fails fast instead of sending it to the backend.
const PlaceholderAPIKey = "your_google_api_key_here"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all generation backend related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// ModelName selects the Gemini model used for every persona.
	ModelName string `mapstructure:"model_name" validate:"required"`

	// Temperature is passed through to the backend. The advisor keeps
	// the original product's 0.7 default.
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// TimeoutSeconds bounds a single backend call. Timeouts surface as
	// generation failures; the orchestrator never waits longer than this
	// per step.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
