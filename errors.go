package modeltree

import (
	"errors"
	"fmt"

	"github.com/modeltree/modeltree/i18n"
)

// Error codes carried by Error.Code.
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeInvalidEnum          = "invalid_enum"
	CodeInvalidValue         = "invalid_value"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeParseError           = "parse_error"
	// Validation-pass codes (business semantics)
	CodeUnknownField       = "unknown_field"
	CodeBusinessRule       = "business_rule"
	CodeAggregateViolation = "aggregate_violation"
)

// ErrorKind splits the taxonomy into the two recoverable failure classes.
type ErrorKind int

const (
	// Construction failures happen while coercing untyped data into typed
	// nodes. They abort the whole construction call; no partial tree is
	// returned.
	Construction ErrorKind = iota
	// Validation failures happen during an explicit pass over an already
	// built tree.
	Validation
)

func (k ErrorKind) String() string {
	if k == Validation {
		return "validation"
	}
	return "construction"
}

// Error is a single construction or validation failure with the path to the
// offending node.
type Error struct {
	Kind    ErrorKind
	Code    string // One of the codes listed above.
	Message string
	Path    Path
	Hint    string // Optional: remediation hints, offending values, etc.
	Cause   error  // Optional: underlying error.
}

// Error renders like "construction: required at /content/1/value".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s: %s", e.Kind, e.Code, e.Path.Pointer(), e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewConstruction builds a Construction error. An empty msg falls back to the
// localized message for code.
func NewConstruction(code string, path Path, msg string) *Error {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return &Error{Kind: Construction, Code: code, Message: msg, Path: path}
}

// NewValidation builds a Validation error. An empty msg falls back to the
// localized message for code.
func NewValidation(code string, path Path, msg string) *Error {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return &Error{Kind: Validation, Code: code, Message: msg, Path: path}
}

// AsError extracts a *Error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsConstruction reports whether err is (or wraps) a Construction error.
func IsConstruction(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == Construction
}

// IsValidation reports whether err is (or wraps) a Validation error.
func IsValidation(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == Validation
}

// DefinitionError reports a misconfigured type definition: duplicate
// discriminator literals, unresolvable field specs, bad builder state. It is
// returned from builders at definition time and never during data processing.
type DefinitionError struct {
	Type   string // Name of the type being defined.
	Detail string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("modeltree: definition of %s: %s", e.Type, e.Detail)
}

// NewDefinitionError builds a DefinitionError with a formatted detail.
func NewDefinitionError(typeName, format string, args ...any) *DefinitionError {
	return &DefinitionError{Type: typeName, Detail: fmt.Sprintf(format, args...)}
}
