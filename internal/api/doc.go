// Package api implements the HTTP layer: request models, handlers for
// running analyses and retrieving reports, error-to-status mapping, and
// the router. Handlers stay thin; orchestration lives in the advisor
// package and handlers only translate between HTTP and domain types.
package api
