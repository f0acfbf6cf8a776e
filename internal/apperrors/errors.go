// Package apperrors defines the recoverable error taxonomy shared by
// services and handlers. Services wrap these sentinels with detail via
// fmt.Errorf("...: %w", ...); handlers match with errors.Is and map them
// to HTTP statuses.
package apperrors

import "errors"

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict covers uniqueness-invariant violations (duplicate
	// follow edge, duplicate like, taken username or email).
	ErrConflict = errors.New("conflict")
	// ErrNotFound covers absent entities and unmet state preconditions
	// (e.g. resolving a follow request that is not PENDING).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers actions the acting user may not perform.
	ErrUnauthorized = errors.New("unauthorized")
)
