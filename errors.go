package schemalens

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeCancelled  ErrorType = "cancelled"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeLoad       ErrorType = "load"
)

// AnalyticsError is the error returned by the analysis engine and its collaborators
type AnalyticsError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Pass    string         `json:"pass,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AnalyticsError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if e.Pass != "" {
		return fmt.Sprintf("[%s:%s] pass %s: %s", e.Type, e.Code, e.Pass, msg)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, msg)
}

func (e *AnalyticsError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a single detail
func (e *AnalyticsError) WithDetail(key string, value any) *AnalyticsError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause adds a cause
func (e *AnalyticsError) WithCause(cause error) *AnalyticsError {
	e.Cause = cause
	return e
}

// WithPass names the analysis pass that failed
func (e *AnalyticsError) WithPass(pass string) *AnalyticsError {
	e.Pass = pass
	return e
}

const (
	ErrCodeAnalysisInProgress = "ANALYSIS_IN_PROGRESS"
	ErrCodePassFailed         = "PASS_FAILED"
	ErrCodeAnalysisCancelled  = "ANALYSIS_CANCELLED"
	ErrCodeSchemaNotFound     = "SCHEMA_NOT_FOUND"
	ErrCodeSchemaLoadFailed   = "SCHEMA_LOAD_FAILED"
	ErrCodeConfigInvalid      = "CONFIG_INVALID"
)

// NewAnalyticsError creates a new AnalyticsError
func NewAnalyticsError(errorType ErrorType, code, message string) *AnalyticsError {
	return &AnalyticsError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
}

// NewAnalysisInProgressError is returned when a full analysis is already running on the same analyzer
func NewAnalysisInProgressError() *AnalyticsError {
	return NewAnalyticsError(ErrorTypeConflict, ErrCodeAnalysisInProgress, "analysis already in progress")
}

// NewPassFailedError wraps an unexpected failure inside one analysis pass
func NewPassFailedError(pass string, cause error) *AnalyticsError {
	return NewAnalyticsError(ErrorTypeInternal, ErrCodePassFailed, "analysis pass failed").
		WithPass(pass).
		WithCause(cause)
}

// NewAnalysisCancelledError reports an analysis aborted by its context
func NewAnalysisCancelledError(cause error) *AnalyticsError {
	return NewAnalyticsError(ErrorTypeCancelled, ErrCodeAnalysisCancelled, "analysis cancelled").WithCause(cause)
}

// NewSchemaNotFoundError creates a schema not found error
func NewSchemaNotFoundError(key string) *AnalyticsError {
	return NewAnalyticsError(ErrorTypeNotFound, ErrCodeSchemaNotFound, "schema not found").WithDetail("schema", key)
}

// NewSchemaLoadError reports a schema file that could not be read or decoded
func NewSchemaLoadError(path string, cause error) *AnalyticsError {
	return NewAnalyticsError(ErrorTypeLoad, ErrCodeSchemaLoadFailed, "failed to load schema "+path).
		WithDetail("path", path).
		WithCause(cause)
}

// NewConfigInvalidError wraps a configuration validation failure
func NewConfigInvalidError(cause error) *AnalyticsError {
	return NewAnalyticsError(ErrorTypeValidation, ErrCodeConfigInvalid, "invalid configuration").WithCause(cause)
}

func hasCode(err error, code string) bool {
	var ae *AnalyticsError
	return errors.As(err, &ae) && ae.Code == code
}

// IsAnalysisInProgress reports whether err is a concurrent-analysis conflict
func IsAnalysisInProgress(err error) bool {
	return hasCode(err, ErrCodeAnalysisInProgress)
}

// IsCancelled reports whether err is a cancelled analysis
func IsCancelled(err error) bool {
	return hasCode(err, ErrCodeAnalysisCancelled)
}

// IsSchemaNotFound reports whether err is a missing schema lookup
func IsSchemaNotFound(err error) bool {
	return hasCode(err, ErrCodeSchemaNotFound)
}
