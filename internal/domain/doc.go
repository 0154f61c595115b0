// Package domain defines the core business entities and errors:
// the user-supplied life context, the three analysis domains, and
// the report produced by an advisor run.
package domain
