package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// Sentinels usable with errors.Is against the typed errors below.
var (
	ErrUnknownToken                 = stdErrors.New("unknown token")
	ErrPersistenceUnavailable       = stdErrors.New("persistence unavailable")
	ErrEnvironmentSignalUnavailable = stdErrors.New("environment signal unavailable")
)

// TokenKind names the table a token lookup was made against.
type TokenKind string

const (
	TokenKindColor      TokenKind = "color"
	TokenKindSpacing    TokenKind = "spacing"
	TokenKindFontSize   TokenKind = "font-size"
	TokenKindShadow     TokenKind = "shadow"
	TokenKindBreakpoint TokenKind = "breakpoint"
)

// UnknownTokenError reports a lookup for a token name that the store does not define.
type UnknownTokenError struct {
	Kind        TokenKind
	Name        string
	Suggestions []string
}

// NewUnknownTokenError constructs an UnknownTokenError.
func NewUnknownTokenError(kind TokenKind, name string, suggestions ...string) error {
	return &UnknownTokenError{Kind: kind, Name: name, Suggestions: suggestions}
}

func (e *UnknownTokenError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("unknown %s token %q", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Is matches ErrUnknownToken.
func (e *UnknownTokenError) Is(target error) bool {
	return target == ErrUnknownToken
}

// PersistenceUnavailableError wraps a failure of the durable preference store.
type PersistenceUnavailableError struct {
	Op  string
	Key string
	Err error
}

// NewPersistenceUnavailableError constructs a PersistenceUnavailableError.
func NewPersistenceUnavailableError(op, key string, err error) error {
	return &PersistenceUnavailableError{Op: op, Key: key, Err: err}
}

func (e *PersistenceUnavailableError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("persistence unavailable: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("persistence unavailable: %s %q", e.Op, e.Key)
}

// Unwrap exposes the underlying error.
func (e *PersistenceUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrPersistenceUnavailable.
func (e *PersistenceUnavailableError) Is(target error) bool {
	return target == ErrPersistenceUnavailable
}

// EnvironmentSignalUnavailableError reports that a host signal (color scheme
// preference, viewport size, resize notifications) cannot be observed.
type EnvironmentSignalUnavailableError struct {
	Signal string
	Err    error
}

// NewEnvironmentSignalUnavailableError constructs an EnvironmentSignalUnavailableError.
func NewEnvironmentSignalUnavailableError(signal string, err error) error {
	return &EnvironmentSignalUnavailableError{Signal: signal, Err: err}
}

func (e *EnvironmentSignalUnavailableError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("environment signal %s unavailable: %v", e.Signal, e.Err)
	}
	return fmt.Sprintf("environment signal %s unavailable", e.Signal)
}

// Unwrap exposes the underlying error.
func (e *EnvironmentSignalUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrEnvironmentSignalUnavailable.
func (e *EnvironmentSignalUnavailableError) Is(target error) bool {
	return target == ErrEnvironmentSignalUnavailable
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures token table or configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
