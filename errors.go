// FILE: lixenwraith/ini/errors.go
package ini

import (
	"errors"
	"fmt"
)

// Errors returned by document, schema, parser and validator operations.
var (
	// ErrNotFound indicates a lookup by name or index had no match.
	ErrNotFound = errors.New("element not found")

	// ErrDuplicateName indicates an insertion whose name already exists in the parent collection.
	ErrDuplicateName = errors.New("ambiguous element name")

	// ErrTypeMismatch indicates a value was requested as a kind it cannot be converted to.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrSyntax indicates malformed INI input.
	ErrSyntax = errors.New("syntax error")

	// ErrValidation indicates a document does not comply with a schema.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyOption indicates an operation would leave an option without values.
	ErrEmptyOption = errors.New("option must hold at least one value")

	// ErrUnknownKind indicates an unrecognized scalar kind name.
	ErrUnknownKind = errors.New("unknown value kind")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrFileTooLarge indicates the configuration file exceeds LoadOptions.MaxFileSize.
	ErrFileTooLarge = errors.New("configuration file too large")

	// ErrCLIParse indicates malformed command-line overrides.
	ErrCLIParse = errors.New("failed to parse command-line arguments")
)

// SyntaxError reports malformed input at a 1-based source line.
type SyntaxError struct {
	// Line is the 1-based line number of the offending input line.
	Line int
	// Message describes the problem.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("syntax error at line %d: %s: %v", e.Line, e.Message, e.Err)
	}
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is reports ErrSyntax as a match.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxErrorf(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// ValidationCode categorizes validation failures.
type ValidationCode uint8

const (
	// CodeMissingSection indicates a mandatory section is absent.
	CodeMissingSection ValidationCode = iota
	// CodeMissingOption indicates a mandatory option is absent.
	CodeMissingOption
	// CodeUnknownSection indicates a section not declared by the schema (strict mode).
	CodeUnknownSection
	// CodeUnknownOption indicates an option not declared by the schema (strict mode).
	CodeUnknownOption
	// CodeCardinality indicates a list was given where a single value is expected, or vice versa.
	CodeCardinality
	// CodeTypeCoercion indicates a value could not be reparsed into the declared kind.
	CodeTypeCoercion
	// CodeRejected indicates the option's validator predicate rejected a value.
	CodeRejected
)

// String returns a human-readable name for the code.
func (c ValidationCode) String() string {
	switch c {
	case CodeMissingSection:
		return "missing_section"
	case CodeMissingOption:
		return "missing_option"
	case CodeUnknownSection:
		return "unknown_section"
	case CodeUnknownOption:
		return "unknown_option"
	case CodeCardinality:
		return "cardinality"
	case CodeTypeCoercion:
		return "type_coercion"
	case CodeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ValidationError describes the first schema violation found in a document.
type ValidationError struct {
	// Section is the name of the offending section.
	Section string
	// Option is the name of the offending option, empty for section-level failures.
	Option string
	// Code categorizes the failure.
	Code ValidationCode
	// Message describes the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var where string
	if e.Option != "" {
		where = fmt.Sprintf("option %q in section %q", e.Option, e.Section)
	} else {
		where = fmt.Sprintf("section %q", e.Section)
	}
	if e.Err != nil {
		return fmt.Sprintf("validation failed for %s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %s", where, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
