package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrCorruptTheme is matched by every CorruptError via errors.Is.
var ErrCorruptTheme = stdErrors.New("corrupt theme file")

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

// ValidationError captures configuration validation issues.
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

// SourceError reports a theme source that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

// NewSourceError constructs a SourceError.
func NewSourceError(path string, err error) error {
	return &SourceError{Path: path, Err: err}
}

func (e *SourceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("theme source %s unreadable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("theme source unreadable: %v", e.Err)
}

// Unwrap exposes the underlying I/O error.
func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LineError reports a line that could not be decoded mid-stream.
type LineError struct {
	Path string
	Line int
	Err  error
}

// NewLineError constructs a LineError.
func NewLineError(path string, line int, err error) error {
	return &LineError{Path: path, Line: line, Err: err}
}

func (e *LineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("theme line %s unreadable: %v", location(e.Path, e.Line), e.Err)
}

// Unwrap exposes the underlying decoding error.
func (e *LineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CorruptError describes a malformed theme entry.
type CorruptError struct {
	Path   string
	Line   int
	Text   string
	Key    string
	Reason string
	Err    error
}

// NewCorruptError constructs a CorruptError. Err may be nil.
func NewCorruptError(line int, text, key, reason string, err error) *CorruptError {
	return &CorruptError{Line: line, Text: text, Key: key, Reason: reason, Err: err}
}

func (e *CorruptError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s: %s", ErrCorruptTheme, location(e.Path, e.Line), e.Reason)
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

// Unwrap exposes the underlying parse failure, if any.
func (e *CorruptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrCorruptTheme.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorruptTheme
}

// DetectorError wraps a failure raised while a detector inspected its source.
type DetectorError struct {
	Detector string
	Err      error
}

// NewDetectorError constructs a DetectorError for the named detector.
func NewDetectorError(name string, err error) error {
	return &DetectorError{Detector: name, Err: err}
}

func (e *DetectorError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detector != "" {
		return fmt.Sprintf("detector error [%s]: %v", e.Detector, e.Err)
	}
	return fmt.Sprintf("detector error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *DetectorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func location(path string, line int) string {
	if path == "" {
		path = "<input>"
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}
