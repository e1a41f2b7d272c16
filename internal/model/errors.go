package model

import "fmt"

// ConfigurationError reports a bad interval specification or other invalid
// configuration. It is fatal to the operation; callers must not silently
// fall back to a default, because a wrong default produces an incorrect
// next-due date nothing downstream can detect.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ValidationError reports a missing or malformed required field. The
// mutation is rejected before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// PermissionError reports a caller lacking the rank or grant an operation
// requires.
type PermissionError struct {
	Operation string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Operation)
}

// PersistenceError reports a failed local cache write. This is the only
// error that rolls back an in-memory mutation: losing the cache would break
// the local-first durability guarantee.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// SyncWarning reports a remote write that failed after the local commit
// succeeded. Non-fatal: the local cache remains authoritative and the remote
// store is eventually consistent with it.
type SyncWarning struct {
	Attempts int
	Err      error
}

func (e *SyncWarning) Error() string {
	return fmt.Sprintf("remote sync failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SyncWarning) Unwrap() error { return e.Err }
