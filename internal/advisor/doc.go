// Package advisor contains the orchestration core: the three domain
// analyzers, the coordinator that merges their results, the run state
// machine, cross-domain insight extraction, and the deterministic
// fallback synthesis used when the generation backend fails.
//
// An Orchestrator is scoped to a single user context and a single run.
// Concurrent sessions must each construct their own instance; nothing in
// this package holds cross-run state.
package advisor
