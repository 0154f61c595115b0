// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns the only suspension point in an advisor
// run: every call is bounded by the configured timeout and a per-persona
// requests-per-minute budget, and every failure mode surfaces as an
// error from the generation package taxonomy.
package gemini
