// Package errors defines the error kinds and codes shared by both services.
// Errors carry a Kind that decides how they propagate (synchronous caller vs
// broker redelivery) and a machine readable Code exposed by the HTTP facade.
package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"strings"
)

type Kind uint8

const (
	Other        Kind = iota // Unclassified error
	Invalid                  // Malformed, missing or out of range input
	NotFound                 // Referenced resource does not exist
	Business                 // Business rule violation or missing configuration
	IllegalState             // Internal invariant violation
	Internal                 // Infrastructure failure (store, broker)
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not found"
	case Business:
		return "business"
	case IllegalState:
		return "illegal state"
	case Internal:
		return "internal"
	}
	return "other"
}

// Error is the error type returned by the workflows.
type Error struct {
	Kind    Kind
	Code    Code
	Field   string
	Message string
	Err     error
}

// E builds an *Error of the given kind wrapping err (which may be nil).
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Code: defaultCode(kind), Message: msg, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// CodeOf returns the code of the outermost *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return CodeInternal
}

// FieldOf returns the offending input field, if any.
func FieldOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Field
	}
	return ""
}

func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func defaultCode(kind Kind) Code {
	switch kind {
	case Invalid:
		return CodeValidation
	case NotFound:
		return CodeResourceNotFound
	case Business:
		return CodeBusiness
	}
	return CodeInternal
}

type fieldError struct {
	field string
	msg   string
}

// ValidationErrors accumulates per field validation failures.
type ValidationErrors struct {
	errs []fieldError
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{}
}

func (v *ValidationErrors) Add(field, msg string) {
	v.errs = append(v.errs, fieldError{field: field, msg: msg})
}

func (v *ValidationErrors) Len() int {
	return len(v.errs)
}

// Err returns nil when nothing was added.
func (v *ValidationErrors) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, len(v.errs))
	for i, fe := range v.errs {
		parts[i] = fe.field + " " + fe.msg
	}
	return strings.Join(parts, "; ")
}
