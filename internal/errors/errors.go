// Package errors provides centralized error definitions and error handling utilities
// for the evolution shell. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - SessionError: a sensor session is missing, closed, or failed to open
//   - CatalogError: the panel catalog could not be built or is empty
//   - InvariantError: a panel surface was found in a slot it must not occupy
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state (configuration, indices)
//
// # Usage
//
//	err := errors.NewCatalogError("cannot navigate", errors.ErrEmptyCatalog)
//	if errors.Is(err, errors.ErrEmptyCatalog) { ... }
//
//	var inv *errors.InvariantError
//	if errors.As(err, &inv) { ... }
//
// Invariant errors are self-corrected by the code that detects them and are
// only ever logged; they are exported so that the repair can be described
// with the same vocabulary as every other failure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Sensor session sentinel errors
var (
	// ErrSessionAbsent indicates an operation needed an open sensor session.
	ErrSessionAbsent = New("sensor session absent")
	// ErrSessionClosed indicates the session was closed while in use.
	ErrSessionClosed = New("sensor session closed")
	// ErrSensorUnavailable indicates the device is not attached.
	ErrSensorUnavailable = New("sensor unavailable")
)

// Panel and catalog sentinel errors
var (
	// ErrEmptyCatalog indicates navigation was requested with zero panels.
	ErrEmptyCatalog = New("panel catalog is empty")
	// ErrIndexOutOfRange indicates a selection index outside the catalog.
	ErrIndexOutOfRange = New("panel index out of range")
	// ErrSurfaceFactory indicates a visualization surface could not be constructed.
	ErrSurfaceFactory = New("surface construction failed")
	// ErrInvariantViolation indicates a surface was attached in two places at once.
	ErrInvariantViolation = New("attachment invariant violated")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ShellError is the base interface for all evolution errors.
type ShellError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the condition should be reflected in the
	// UI (the UI still chooses the wording).
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SessionError represents errors related to the sensor session.
//
// Example:
//
//	err := errors.NewSessionError("cannot build panels", errors.ErrSessionAbsent)
//	err = err.WithSessionID("5d1c...")
//	fmt.Println(err) // "session error [session=5d1c...]: cannot build panels: sensor session absent"
type SessionError struct {
	baseError
	SessionID string
	Driver    string
}

// NewSessionError creates a new SessionError.
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithSessionID adds a session ID to the error context.
func (e *SessionError) WithSessionID(id string) *SessionError {
	e.SessionID = id
	return e
}

// WithDriver records which sensor driver produced the error.
func (e *SessionError) WithDriver(driver string) *SessionError {
	e.Driver = driver
	return e
}

// WithSeverity sets the error severity.
func (e *SessionError) WithSeverity(s Severity) *SessionError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *SessionError) Error() string {
	var parts []string
	if e.SessionID != "" {
		parts = append(parts, fmt.Sprintf("session=%s", e.SessionID))
	}
	if e.Driver != "" {
		parts = append(parts, fmt.Sprintf("driver=%s", e.Driver))
	}
	return e.format("session error", parts)
}

// Is checks if this error matches the target.
func (e *SessionError) Is(target error) bool {
	if _, ok := target.(*SessionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// CatalogError represents errors related to the panel catalog and navigation
// over it.
//
// Example:
//
//	err := errors.NewCatalogError("cycle tech selection", errors.ErrEmptyCatalog).WithCount(0)
type CatalogError struct {
	baseError
	Index int
	Count int
	Panel string
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(message string, cause error) *CatalogError {
	return &CatalogError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Index: -1,
		Count: -1,
	}
}

// WithIndex records the offending selection index.
func (e *CatalogError) WithIndex(idx int) *CatalogError {
	e.Index = idx
	return e
}

// WithCount records the catalog size at the time of the failure.
func (e *CatalogError) WithCount(n int) *CatalogError {
	e.Count = n
	return e
}

// WithPanel records the panel title involved.
func (e *CatalogError) WithPanel(title string) *CatalogError {
	e.Panel = title
	return e
}

// Error returns the formatted error message.
func (e *CatalogError) Error() string {
	var parts []string
	if e.Panel != "" {
		parts = append(parts, fmt.Sprintf("panel=%s", e.Panel))
	}
	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("index=%d", e.Index))
	}
	if e.Count >= 0 {
		parts = append(parts, fmt.Sprintf("count=%d", e.Count))
	}
	return e.format("catalog error", parts)
}

// Is checks if this error matches the target.
func (e *CatalogError) Is(target error) bool {
	if _, ok := target.(*CatalogError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// InvariantError describes a single-attachment violation that was detected
// and repaired.
//
// Example:
//
//	err := errors.NewInvariantError("surface already in tech slot").
//		WithSurface("body-2").WithSlots("tech", "thumbnails")
type InvariantError struct {
	baseError
	SurfaceID string
	Found     string
	Wanted    string
}

// NewInvariantError creates a new InvariantError.
func NewInvariantError(message string) *InvariantError {
	return &InvariantError{
		baseError: baseError{
			message:    message,
			cause:      ErrInvariantViolation,
			severity:   SeverityWarning,
			userFacing: false,
		},
	}
}

// WithSurface records the surface identity.
func (e *InvariantError) WithSurface(id string) *InvariantError {
	e.SurfaceID = id
	return e
}

// WithSlots records where the surface was found and where it was headed.
func (e *InvariantError) WithSlots(found, wanted string) *InvariantError {
	e.Found = found
	e.Wanted = wanted
	return e
}

// Error returns the formatted error message.
func (e *InvariantError) Error() string {
	var parts []string
	if e.SurfaceID != "" {
		parts = append(parts, fmt.Sprintf("surface=%s", e.SurfaceID))
	}
	if e.Found != "" {
		parts = append(parts, fmt.Sprintf("found=%s", e.Found))
	}
	if e.Wanted != "" {
		parts = append(parts, fmt.Sprintf("wanted=%s", e.Wanted))
	}
	return e.format("invariant error", parts)
}

// Is checks if this error matches the target.
func (e *InvariantError) Is(target error) bool {
	if _, ok := target.(*InvariantError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("must be positive").WithField("tui.min_full_width").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error describes a condition the UI should
// reflect (empty catalog, missing sensor, bad configuration).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var shellErr ShellError
	if As(err, &shellErr) {
		return shellErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ShellError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var shellErr ShellError
	if As(err, &shellErr) {
		return shellErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
