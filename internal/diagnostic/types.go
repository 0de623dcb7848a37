package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"ber-generator/internal/common"
)

// Diagnostic codes produced by the parser and the resolver.
const (
	CodeMalformedHeader         = "malformed_header"
	CodeUnsupportedDefinition   = "unsupported_definition"
	CodeMalformedField          = "malformed_field"
	CodeDuplicateRecord         = "duplicate_record"
	CodeDuplicateField          = "duplicate_field"
	CodeDuplicateIndex          = "duplicate_index"
	CodeIndexOutOfRange         = "index_out_of_range"
	CodeUnterminatedBlock       = "unterminated_block"
	CodeUnknownOption           = "unknown_option"
	CodeMalformedOption         = "malformed_option"
	CodeUnknownFieldOption      = "unknown_field_option"
	CodeUnknownRecord           = "unknown_record"
	CodeUnknownField            = "unknown_field"
	CodeUnresolvedType          = "unresolved_type"
	CodeUnknownElementType      = "unknown_element_type"
	CodeOptionNotApplicable     = "option_not_applicable"
	CodeConflictingFieldOptions = "conflicting_field_options"
)

// Warning codes. Warnings never fail a run.
const (
	CodeSkippedLine     = "skipped_line"
	CodeEmptyRecord     = "empty_record"
	CodeASCIIOnlyLength = "ascii_only_length"
)

// Diagnostics holds all diagnostic information from a pipeline stage.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Line is the 1-based schema line (0 when unknown).
	Line int
	// Record names the record this relates to (if any).
	Record string
	// Field names the field this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Errorf builds an error diagnostic.
func Errorf(code string, line int, record, field, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Record:   record,
		Field:    field,
	}
}

// Warningf builds a warning diagnostic.
func Warningf(code string, line int, record, field, format string, args ...any) Diagnostic {
	d := Errorf(code, line, record, field, format, args...)
	d.Severity = DiagnosticWarning

	return d
}

// WithSuggestions returns a copy of d carrying the given suggestions.
func (d Diagnostic) WithSuggestions(s []string) Diagnostic {
	d.Suggestions = s
	return d
}

// Err wraps d as an error value.
func (d Diagnostic) Err() error {
	return &Error{Diagnostic: d}
}

// Add appends a diagnostic, routing it by severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	if diag.Severity == DiagnosticError {
		d.Errors = append(d.Errors, diag)
		return
	}

	d.Warnings = append(d.Warnings, diag)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.Err())
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Line > 0 {
		prefix = append(prefix, fmt.Sprintf("line %d", d.Line))
	}

	switch {
	case d.Record != "" && d.Field != "":
		prefix = append(prefix, d.Record+"."+d.Field)
	case d.Record != "":
		prefix = append(prefix, d.Record)
	case d.Field != "":
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ": ") + ": " + msg
	}

	return msg
}

// Error is a Diagnostic surfaced as a Go error.
type Error struct {
	Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// CodeOf returns the diagnostic code carried by err, or "" if err does not
// wrap a diagnostic.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}

	return ""
}
