package paxada

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported when a doc file fails validation.
const (
	CodeInvalidDocument = "invalid_document"
	CodeInvalidType     = "invalid_type"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeParseError      = "parse_error"
)

// Issue represents a single problem found in a doc file.
type Issue struct {
	Path    string // JSON Pointer (for example: /body/properties/name).
	Code    string // One of the codes listed above.
	Message string
	File    string // Optional: the doc file the issue belongs to.
	Line    int    // Optional: 1-based line in File, 0 when unknown.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /body/name: expected object
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrorCode classifies errors returned by the assemblers.
type ErrorCode string

const (
	ErrCodeMissingRequiredInput ErrorCode = "MISSING_REQUIRED_INPUT"
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
)

// Error is a structured error returned across the assembler boundary.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so errors.Is(err,
// ErrMissingRequiredInput) works for every missing-input failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// ErrMissingRequiredInput is the sentinel for a name that is absent and
// cannot be derived.
var ErrMissingRequiredInput = &Error{Code: ErrCodeMissingRequiredInput, Message: "missing required input"}

func missingInput(format string, a ...any) *Error {
	return &Error{Code: ErrCodeMissingRequiredInput, Message: fmt.Sprintf(format, a...)}
}

// GetCode returns the code of an *Error in err's chain, or "".
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
