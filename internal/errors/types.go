package errors

import (
	"fmt"
	"sort"
	"strings"
)

// WiredError is implemented by every error raised by the generator tooling
type WiredError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	FileSystemErrorCode
	ConfigurationErrorCode
	ModuleErrorCode
	PlanErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case ModuleErrorCode:
		return "ModuleError"
	case PlanErrorCode:
		return "PlanError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred
type SourceLocation struct {
	File string
	Line int
}

// String returns file:line, or just the file when the line is unknown
func (s SourceLocation) String() string {
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// IsEmpty reports whether the location carries no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the common WiredError implementation
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error implements the error interface
func (e *BaseError) Error() string {
	msg := e.Message
	if !e.Loc.IsEmpty() {
		msg = e.Loc.String() + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode { return e.Code }

// Location returns where the error occurred
func (e *BaseError) Location() SourceLocation { return e.Loc }

// Context returns the attached context values
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

// ContextKeys returns the context keys in sorted order
func (e *BaseError) ContextKeys() []string {
	keys := make([]string, 0, len(e.ContextData))
	for key := range e.ContextData {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Suggestions returns hints for fixing the error
func (e *BaseError) Suggestions() []string { return e.Hints }

// Unwrap returns the underlying cause
func (e *BaseError) Unwrap() error { return e.Cause }

// WithLocation sets the location
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext attaches a context value
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestions appends hints
func (e *BaseError) WithSuggestions(hints ...string) *BaseError {
	e.Hints = append(e.Hints, hints...)
	return e
}

// Describe renders the error with its context and hints on separate lines
func (e *BaseError) Describe() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, key := range e.ContextKeys() {
		fmt.Fprintf(&b, "\n  %s: %v", key, e.ContextData[key])
	}
	for _, hint := range e.Hints {
		fmt.Fprintf(&b, "\n  hint: %s", hint)
	}
	return b.String()
}

// New creates a BaseError
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Wrap creates a BaseError around cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

var _ WiredError = (*BaseError)(nil)
