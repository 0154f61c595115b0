// Package generation provides the interface and error taxonomy for the
// text-generation backend. It abstracts the details of LLM API
// integration (Gemini), allowing the advisor core to run persona-driven
// analyses without coupling to a specific external service.
package generation
