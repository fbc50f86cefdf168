// Package apperrors provides the structured error taxonomy shared by the
// domain, service and transport layers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is a stable, machine-readable error discriminator.
type Kind string

const (
	// KindValidation indicates one or more field-level constraint violations.
	KindValidation Kind = "VALIDATION"
	// KindNotFound indicates a missing article, review or suggestion.
	KindNotFound Kind = "NOT_FOUND"
	// KindUnauthenticated indicates no current user.
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	// KindMissingRole indicates the current user lacks the required role.
	KindMissingRole Kind = "MISSING_ROLE"
	// KindOwnership indicates the acting user does not own the resource.
	KindOwnership Kind = "OWNERSHIP_VIOLATION"
	// KindPolicyViolation indicates a publishing eligibility check failed.
	KindPolicyViolation Kind = "POLICY_VIOLATION"
	// KindReviewClosed indicates the article review no longer accepts suggestions.
	KindReviewClosed Kind = "REVIEW_CLOSED"
	// KindConflict indicates the aggregate state disallows the operation.
	KindConflict Kind = "CONFLICT"
)

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type carrying a Kind discriminator and,
// for validation failures, the full list of violated fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates an application error with a kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an application error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error enumerating every violated field.
func Validation(fields []FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// KindOf extracts the kind of err; ok is false when err is not an
// application error anywhere in its chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// AsError extracts the application error from err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// HTTPStatus maps an error kind to an HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindMissingRole, KindOwnership:
		return http.StatusForbidden
	case KindPolicyViolation, KindReviewClosed, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
