package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownStep indicates a step identifier outside the nine-step journey.
	ErrUnknownStep = errors.New("unknown step")

	// ErrUnknownFormat indicates an unsupported export format.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrInvalidImport indicates an import payload that failed the shape check.
	// The in-memory document is left untouched when this is returned.
	ErrInvalidImport = errors.New("invalid import payload")

	// ErrEmptyCredential indicates a blank credential was submitted.
	ErrEmptyCredential = errors.New("credential is empty")

	// ErrInsightUnavailable indicates no credential is configured.
	// Insight features degrade to canned fallback text.
	ErrInsightUnavailable = errors.New("insight service unavailable")

	// ErrInsightRequest covers every request failure uniformly: network
	// errors, non-success statuses, and malformed response bodies.
	ErrInsightRequest = errors.New("insight request failed")
)
