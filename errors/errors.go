package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Labels is the context trail, outermost first.
	Labels []string `json:"labels,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error, labels first.
func (e *AppError) Error() string {
	var sb strings.Builder
	for _, l := range e.Labels {
		sb.WriteString(l)
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Code))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, " (cause: %v)", e.Cause)
	}
	return sb.String()
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithLabel prepends a context label and returns the receiver.
func (e *AppError) WithLabel(label string) *AppError {
	e.Labels = append([]string{label}, e.Labels...)
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Label adds a context label to err. Errors that are not an *AppError are
// wrapped as internal errors first. A nil err stays nil.
func Label(err error, label string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = Internal(err)
	}
	return appErr.WithLabel(label)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Common Error Constructors ---

// NotFound creates a lookup failure for an unknown name in a registry family.
func NotFound(family, name string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no such %s %q", family, name),
		Details: map[string]any{"family": family, "name": name},
	}
}

// InvalidInput creates an argument error with the offending tokens attached.
func InvalidInput(reason string, tokens ...string) *AppError {
	e := &AppError{Code: ErrCodeInvalidInput, Message: reason}
	if len(tokens) > 0 {
		e.Details = map[string]any{"tokens": tokens}
	}
	return e
}

// Validation creates a validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Help carries help text requested by the user.
func Help(lines []string) *AppError {
	return &AppError{
		Code: ErrCodeHelp, Message: strings.Join(lines, "\n"),
		Details: map[string]any{"lines": lines},
	}
}

// CatalogCollision creates the error for an alias declared twice in one registry.
func CatalogCollision(family, name string) *AppError {
	return &AppError{
		Code: ErrCodeCatalogCollision, Message: fmt.Sprintf("%s alias %q declared more than once", family, name),
		Details: map[string]any{"family": family, "name": name},
	}
}

// IOError creates an error for a file that could not be opened or read.
func IOError(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIO, Message: fmt.Sprintf("cannot read %s", path),
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// ProcessFailed creates an error for a child process failure.
func ProcessFailed(binary string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeProcessFailed, Message: fmt.Sprintf("process %s failed", binary),
		Details: map[string]any{"binary": binary}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "unexpected error", Cause: cause}
}
