package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Everything else
// surfaces as a storage fault.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrTooLarge           = errors.New("file too large")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// errDryRunRollback aborts a dry-run transaction after the full write path
// has been exercised. It is swallowed by the caller, never returned.
var errDryRunRollback = errors.New("dry run rollback")
