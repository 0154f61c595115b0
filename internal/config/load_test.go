package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for a test and returns a cleanup
// function restoring the previous values.
func setupEnv(t *testing.T, envVars map[string]string) func() {
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	for name, value := range envVars {
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
			continue
		}
		require.NoError(t, os.Setenv(name, value), "Failed to set environment variable %s", name)
	}

	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that Load sets the expected default values
// when only the required API key is provided.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"LIFEOPS_LLM_GEMINI_API_KEY": "test-api-key",
		"LIFEOPS_SERVER_PORT":        "",
		"LIFEOPS_SERVER_LOG_LEVEL":   "",
		"LIFEOPS_LLM_MODEL_NAME":     "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName, "Default model name should be set")
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9, "Default temperature should be 0.7")
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds, "Default timeout should be 60 seconds")
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"LIFEOPS_SERVER_PORT":         "9090",
		"LIFEOPS_SERVER_LOG_LEVEL":    "debug",
		"LIFEOPS_LLM_GEMINI_API_KEY":  "test-api-key",
		"LIFEOPS_LLM_MODEL_NAME":      "gemini-2.0-pro",
		"LIFEOPS_LLM_TIMEOUT_SECONDS": "30",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-pro", cfg.LLM.ModelName)
	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
}

// TestLoadValidationErrors verifies that Load rejects invalid configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "missing API key",
			envVars: map[string]string{
				"LIFEOPS_LLM_GEMINI_API_KEY": "",
				"LIFEOPS_SERVER_PORT":        "9090",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "port out of range",
			envVars: map[string]string{
				"LIFEOPS_LLM_GEMINI_API_KEY": "test-api-key",
				"LIFEOPS_SERVER_PORT":        "999999",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"LIFEOPS_LLM_GEMINI_API_KEY": "test-api-key",
				"LIFEOPS_SERVER_PORT":        "9090",
				"LIFEOPS_SERVER_LOG_LEVEL":   "loud",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "placeholder API key is rejected",
			envVars: map[string]string{
				"LIFEOPS_LLM_GEMINI_API_KEY": PlaceholderAPIKey,
				"LIFEOPS_SERVER_PORT":        "9090",
				"LIFEOPS_SERVER_LOG_LEVEL":   "info",
			},
			errorSubstring: "placeholder",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring)
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
