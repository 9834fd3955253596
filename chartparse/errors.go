package chartparse

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when the input file can't be read.
// It is reported before any parsing takes place.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file or directory: %s (%v)", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// FormatError is returned when the content is not well-formed YAML,
// is not a mapping at top level, or does not have the expected structure.
type FormatError struct {
	Msg string
	Err error // underlying decoder error, may be nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid chart format: %s: %v", e.Msg, e.Err)
	}
	return "invalid chart format: " + e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// MissingFieldError is returned when a required key is absent.
type MissingFieldError struct {
	Field string
	Line  int // line of the enclosing mapping in the document
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q (line %d)", e.Field, e.Line)
}

// InvalidValueError is returned when an enumerated field
// holds a label outside of its allowed values.
type InvalidValueError struct {
	Field   string
	Value   string
	Allowed []string
	Line    int
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q (line %d), expected one of %s",
		e.Value, e.Field, e.Line, strings.Join(e.Allowed, ", "))
}

// InvalidDegreeError is returned for a chord degree lower than 1.
type InvalidDegreeError struct {
	Degree int
	// Measure is the 1-based index of the measure holding the chord
	// in a measure collection, 0 for other documents.
	Measure int
	// Element is the 1-based index of the line element holding the chord
	// in a line chart, 0 for other documents.
	Element int
}

func (e *InvalidDegreeError) Error() string {
	msg := fmt.Sprintf("chord degree must be positive, got: %d", e.Degree)
	switch {
	case e.Measure > 0:
		msg += fmt.Sprintf(" (measure %d)", e.Measure)
	case e.Element > 0:
		msg += fmt.Sprintf(" (line element %d)", e.Element)
	}
	return msg
}
