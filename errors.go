// FILE: lixenwraith/deconfig/errors.go
package deconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by an Adapter that has no value for a field.
	// It is the only error that moves resolution on to the next adapter.
	ErrNotFound = errors.New("field not found")

	// ErrMissingRequiredField is the cause of every MissingFieldError.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrNoAdapters is returned at field access when neither the container nor
	// the registry it falls back to has any adapters.
	ErrNoAdapters = errors.New("no adapters configured")

	// ErrUnknownField is returned when a container is asked for an undeclared field.
	ErrUnknownField = errors.New("unknown field")

	// ErrRegistrySealed is returned by Registry.Set after Seal.
	ErrRegistrySealed = errors.New("registry is sealed")
)

// DeclarationError reports a malformed schema. It is returned by Builder.Build
// and is never produced at field access time.
type DeclarationError struct {
	Schema string // Schema name passed to NewBuilder
	Method string // Declaring method, empty for schema-level problems
	Err    error
}

func (e *DeclarationError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("deconfig: declaration error in %s.%s: %v", e.Schema, e.Method, e.Err)
	}
	return fmt.Sprintf("deconfig: declaration error in %s: %v", e.Schema, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a required field has no adapter value and
// its provider has no default.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("deconfig: field %q not found in any adapter and has no default", e.Field)
}

// Unwrap allows errors.Is(err, ErrMissingRequiredField).
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// TransformError is returned when a transformer cannot convert its input.
type TransformError struct {
	Field       string // Filled in by the pipeline
	Transformer string // Kind of transformer, e.g. "integer" or "custom"
	Value       any    // Input that failed
	Err         error
}

func (e *TransformError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("deconfig: transform %s failed for field %q on %v (%T): %v",
			e.Transformer, e.Field, e.Value, e.Value, e.Err)
	}
	return fmt.Sprintf("deconfig: transform %s failed on %v (%T): %v",
		e.Transformer, e.Value, e.Value, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by the first failing validator of a field.
type ValidationError struct {
	Field string
	Index int // Position of the failing validator in declaration order
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("deconfig: validation %d failed for field %q: %v", e.Index, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AdapterError wraps any failure other than ErrNotFound returned by an adapter.
// Resolution stops at the first AdapterError.
type AdapterError struct {
	Field   string
	Adapter string
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("deconfig: adapter %s failed for field %q: %v", e.Adapter, e.Field, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// notFoundf builds an ErrNotFound with adapter specific detail.
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
