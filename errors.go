package crossing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents specific error conditions in the controller
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// A transition leads outside the phase enumeration
	ErrCodeUnknownPhase
	// A phase has no dwell time
	ErrCodeZeroDwell
	// Lamps of a phase contradict each other
	ErrCodeConflictingLights
	// Pedestrian indicator contradicts itself or the lamps
	ErrCodeUnsafeCrossing
	// A phase cannot be reached from the initial phase
	ErrCodeUnreachable
	// The clearance chain depends on input or is missing
	ErrCodeClearanceChain
	// Controller configuration is invalid
	ErrCodeInvalidConfiguration
	// Writing to the output device failed
	ErrCodeOutputFailed
)

// ErrInvalidTable is wrapped by every table validation failure.
var ErrInvalidTable = errors.New("invalid phase table")

// NoInput marks a TableError that does not concern a particular input vector.
const NoInput Input = 0xFF

// TableError describes one defect in a phase table
type TableError struct {
	Code  ErrorCode
	Phase Phase
	Input Input
	Issue string
}

func (e *TableError) Error() string {
	if e.Input == NoInput {
		return fmt.Sprintf("phase %s: %s", e.Phase, e.Issue)
	}
	return fmt.Sprintf("phase %s on input %s: %s", e.Phase, e.Input, e.Issue)
}

// Unwrap lets errors.Is match ErrInvalidTable
func (e *TableError) Unwrap() error {
	return ErrInvalidTable
}

// NewTableError creates a table error that is not tied to an input vector
func NewTableError(code ErrorCode, phase Phase, issue string) *TableError {
	return &TableError{
		Code:  code,
		Phase: phase,
		Input: NoInput,
		Issue: issue,
	}
}

// NewTransitionError creates a table error for one entry of a transition row
func NewTransitionError(code ErrorCode, phase Phase, in Input, issue string) *TableError {
	return &TableError{
		Code:  code,
		Phase: phase,
		Input: in,
		Issue: issue,
	}
}

// ConfigurationError represents controller configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// OutputError reports a failed write of a phase's outputs
type OutputError struct {
	Phase       Phase
	Lights      LightPattern
	Walk        PedestrianPattern
	OriginalErr error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing outputs of phase %s (lights %s, walk %s): %v", e.Phase, e.Lights, e.Walk, e.OriginalErr)
}

func (e *OutputError) Unwrap() error {
	return e.OriginalErr
}

// NewOutputError wraps a device error with the phase being driven
func NewOutputError(phase Phase, lights LightPattern, walk PedestrianPattern, err error) *OutputError {
	return &OutputError{
		Phase:       phase,
		Lights:      lights,
		Walk:        walk,
		OriginalErr: err,
	}
}

// IsTableError checks if an error is or wraps a TableError
func IsTableError(err error) bool {
	var te *TableError
	return errors.As(err, &te)
}

// IsConfigurationError checks if an error is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsOutputError checks if an error is or wraps an OutputError
func IsOutputError(err error) bool {
	var oe *OutputError
	return errors.As(err, &oe)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var te *TableError
	var ce *ConfigurationError
	var oe *OutputError
	switch {
	case errors.As(err, &te):
		return te.Code
	case errors.As(err, &ce):
		return ErrCodeInvalidConfiguration
	case errors.As(err, &oe):
		return ErrCodeOutputFailed
	default:
		return ErrCodeNone
	}
}

// ErrorCollector collects multiple errors during validation
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors returns whether any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Errors returns all collected errors
func (ec *ErrorCollector) Errors() []error {
	return ec.errors
}

// Err returns nil when nothing was collected and the collector itself otherwise.
func (ec *ErrorCollector) Err() error {
	if !ec.HasErrors() {
		return nil
	}
	return ec
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (ec *ErrorCollector) Unwrap() []error {
	return ec.errors
}

func (ec *ErrorCollector) Error() string {
	if len(ec.errors) == 0 {
		return "no errors"
	}

	if len(ec.errors) == 1 {
		return ec.errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(ec.errors)))

	for i, err := range ec.errors {
		sb.WriteString(fmt.Sprintf("  %d: %v\n", i+1, err))
	}

	return sb.String()
}
