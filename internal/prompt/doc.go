// Package prompt builds the natural-language task descriptions sent to
// the generation backend. It owns the closed persona roster (one per
// analysis domain plus the coordinator) and the per-domain prompt
// templates. Building a prompt is a pure function of the user context:
// absent fields render as explicit placeholders instead of failing.
package prompt
