package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	KindSchemaError    = "SchemaError"
	KindParseError     = "ParseError"
	KindSizeLimitError = "SizeLimitError"
	KindRenderError    = "RenderError"
	KindInternalError  = "InternalError"
)

// SchemaError reports required columns missing from the input header.
type SchemaError struct {
	Missing []string // sorted
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", quoteJoin(e.Missing))
}

func (e *SchemaError) Kind() string {
	return KindSchemaError
}

// ParseError reports a value that could not be coerced. Row is 1-based over data rows; 0 means
// the error concerns the table as a whole.
type ParseError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("invalid table: %s", e.Reason)
	case e.Row == 0:
		return fmt.Sprintf("invalid values in column %q: %s", e.Column, e.Reason)
	default:
		return fmt.Sprintf("invalid value %q in column %q at row %d: %s", e.Value, e.Column, e.Row, e.Reason)
	}
}

func (e *ParseError) Kind() string {
	return KindParseError
}

// SizeLimitError is raised at the upload boundary, before any parsing.
type SizeLimitError struct {
	Limit int64
	Size  int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file too large: max size is %d MB", e.Limit/(1024*1024))
}

func (e *SizeLimitError) Kind() string {
	return KindSizeLimitError
}

// RenderError wraps a failure in the chart, layout or serialization stage.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error in %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Kind() string {
	return KindRenderError
}

func NewRenderError(stage string, err error) *RenderError {
	return &RenderError{Stage: stage, Err: err}
}

// KindOf returns the machine-readable kind of err, looking through wrapping.
func KindOf(err error) string {
	var kinded interface{ Kind() string }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return KindInternalError
}

// IsInputError reports whether err was caused by the caller's input.
func IsInputError(err error) bool {
	switch KindOf(err) {
	case KindSchemaError, KindParseError, KindSizeLimitError:
		return true
	}
	return false
}

func quoteJoin(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+v+"'")
	}
	return strings.Join(quoted, ", ")
}
