package transaction

import (
	"errors"
	"fmt"

	"github.com/roach88/runledger/internal/runpath"
)

// Kind identifies one operation kind. The constant order below is the
// fixed execution order across kinds.
type Kind string

const (
	KindDescriptionChange Kind = "description-change"
	KindInterrupt         Kind = "interrupt"
	KindRemoval           Kind = "removal"
	KindMove              Kind = "move"
	KindNewRun            Kind = "new-run"
)

// ValidationError reports that a queue's records conflict with each
// other or with persisted state. Raised only during the validate phase,
// before any side effect anywhere.
type ValidationError struct {
	// Kind is the sub-transaction whose validation failed.
	Kind Kind

	// Path is the offending record's path.
	Path runpath.Path

	// Reason is a human-readable description of the conflict.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed for %q: %s", e.Kind, e.Path, e.Reason)
}

// ExecutionError reports that one record's side effect could not be
// completed. Earlier side effects are not rolled back beyond the
// database session.
type ExecutionError struct {
	// Kind is the sub-transaction whose execution failed.
	Kind Kind

	// Path is the record's path.
	Path runpath.Path

	// Err is the underlying collaborator failure.
	Err error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s execution failed for %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsExecution reports whether err is (or wraps) an ExecutionError.
func IsExecution(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

func validationErrorf(kind Kind, path runpath.Path, format string, args ...any) error {
	return &ValidationError{Kind: kind, Path: path, Reason: fmt.Sprintf(format, args...)}
}

func executionError(kind Kind, path runpath.Path, err error) error {
	return &ExecutionError{Kind: kind, Path: path, Err: err}
}
