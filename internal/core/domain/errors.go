// Package domain defines the shared models of canikit: the API error taxonomy,
// validation records, paging, versions and audit log entries.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Source is the fixed source tag attached to errors raised by canikit helpers.
const Source = "canikit"

// ErrorType classifies an APIError.
type ErrorType uint8

const (
	TypeNotImplemented ErrorType = iota
	TypeUnexpected
	TypeUnauthorized
	TypeNotFound
	TypeBadRequest
	TypeUnsupported
	TypeDuplicate
	TypeValidationError
	TypeSerializeError
	TypeDeserializeError
	TypePayloadTooLarge
	TypeServiceUnavailable
	TypeConflict
	TypeForbidden
	TypeExternalServiceError
	TypeDeprecated
)

var errorTypeNames = [...]string{
	TypeNotImplemented:       "NotImplemented",
	TypeUnexpected:           "Unexpected",
	TypeUnauthorized:         "Unauthorized",
	TypeNotFound:             "NotFound",
	TypeBadRequest:           "BadRequest",
	TypeUnsupported:          "Unsupported",
	TypeDuplicate:            "Duplicate",
	TypeValidationError:      "ValidationError",
	TypeSerializeError:       "SerializeError",
	TypeDeserializeError:     "DeserializeError",
	TypePayloadTooLarge:      "PayloadTooLarge",
	TypeServiceUnavailable:   "ServiceUnavailable",
	TypeConflict:             "Conflict",
	TypeForbidden:            "Forbidden",
	TypeExternalServiceError: "ExternalServiceError",
	TypeDeprecated:           "Deprecated",
}

// String returns the type name.
func (t ErrorType) String() string {
	if int(t) < len(errorTypeNames) {
		return errorTypeNames[t]
	}
	return fmt.Sprintf("ErrorType(%d)", uint8(t))
}

// MarshalText encodes the type by name.
func (t ErrorType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *ErrorType) UnmarshalText(text []byte) error {
	for i, name := range errorTypeNames {
		if name == string(text) {
			*t = ErrorType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown error type %q", text)
}

// APIError is the structured error returned across every fallible boundary.
//
// Builders return modified copies, so package-level sentinels stay untouched.
type APIError struct {
	Type       ErrorType            `json:"error_type"`
	Message    string               `json:"message"`
	MethodName string               `json:"method_name,omitempty"`
	Source     string               `json:"source,omitempty"`
	Tag        string               `json:"tag,omitempty"`
	Info       []string             `json:"info,omitempty"`
	Timestamp  uint64               `json:"timestamp"`
	Validation []ValidationResponse `json:"validation,omitempty"`
	Cause      error                `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Type.String())
	b.WriteString("]")
	if e.Message != "" {
		b.WriteString(" ")
		b.WriteString(e.Message)
	}
	if e.MethodName != "" {
		fmt.Fprintf(&b, " (%s)", e.MethodName)
	}
	if len(e.Info) > 0 {
		fmt.Fprintf(&b, " info=%s", strings.Join(e.Info, ","))
	}
	if len(e.Validation) > 0 {
		fields := make([]string, 0, len(e.Validation))
		for _, v := range e.Validation {
			fields = append(fields, v.Field+": "+v.Message)
		}
		fmt.Fprintf(&b, " fields=[%s]", strings.Join(fields, "; "))
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " source=%s", e.Source)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is matches any APIError of the same type.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func (e *APIError) clone() *APIError {
	c := *e
	if e.Info != nil {
		c.Info = append([]string(nil), e.Info...)
	}
	return &c
}

// WithMethod returns a copy carrying the operation name.
func (e *APIError) WithMethod(name string) *APIError {
	c := e.clone()
	c.MethodName = name
	return c
}

// WithInfo returns a copy with info appended.
func (e *APIError) WithInfo(info ...string) *APIError {
	c := e.clone()
	c.Info = append(c.Info, info...)
	return c
}

// WithSource returns a copy carrying the source tag.
func (e *APIError) WithSource(source string) *APIError {
	c := e.clone()
	c.Source = source
	return c
}

// WithTag returns a copy carrying a caller defined tag.
func (e *APIError) WithTag(tag string) *APIError {
	c := e.clone()
	c.Tag = tag
	return c
}

// WithCause returns a copy wrapping the given cause.
func (e *APIError) WithCause(cause error) *APIError {
	c := e.clone()
	c.Cause = cause
	return c
}

// Clock returns the current time in nanoseconds. Replaced in tests.
var Clock = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// NewAPIError creates an APIError of the given type stamped with the current time.
func NewAPIError(t ErrorType, message string) *APIError {
	return &APIError{
		Type:      t,
		Message:   message,
		Timestamp: Clock(),
	}
}

func NotImplemented(message string) *APIError { return NewAPIError(TypeNotImplemented, message) }
func Unexpected(message string) *APIError     { return NewAPIError(TypeUnexpected, message) }
func Unauthorized(message string) *APIError   { return NewAPIError(TypeUnauthorized, message) }
func NotFound(message string) *APIError       { return NewAPIError(TypeNotFound, message) }
func BadRequest(message string) *APIError     { return NewAPIError(TypeBadRequest, message) }
func Unsupported(message string) *APIError    { return NewAPIError(TypeUnsupported, message) }
func Duplicate(message string) *APIError      { return NewAPIError(TypeDuplicate, message) }
func Serialize(message string) *APIError      { return NewAPIError(TypeSerializeError, message) }
func Deserialize(message string) *APIError    { return NewAPIError(TypeDeserializeError, message) }
func PayloadTooLarge(message string) *APIError {
	return NewAPIError(TypePayloadTooLarge, message)
}
func ServiceUnavailable(message string) *APIError {
	return NewAPIError(TypeServiceUnavailable, message)
}
func Conflict(message string) *APIError  { return NewAPIError(TypeConflict, message) }
func Forbidden(message string) *APIError { return NewAPIError(TypeForbidden, message) }
func ExternalService(message string) *APIError {
	return NewAPIError(TypeExternalServiceError, message)
}
func Deprecated(message string) *APIError { return NewAPIError(TypeDeprecated, message) }

// ValidationFailed wraps every collected field failure into one error.
func ValidationFailed(responses []ValidationResponse) *APIError {
	e := NewAPIError(TypeValidationError, "")
	e.Validation = responses
	return e
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound           = &APIError{Type: TypeNotFound}
	ErrDuplicate          = &APIError{Type: TypeDuplicate}
	ErrUnexpected         = &APIError{Type: TypeUnexpected}
	ErrForbidden          = &APIError{Type: TypeForbidden}
	ErrValidation         = &APIError{Type: TypeValidationError}
	ErrExternalService    = &APIError{Type: TypeExternalServiceError}
	ErrBadRequest         = &APIError{Type: TypeBadRequest}
	ErrServiceUnavailable = &APIError{Type: TypeServiceUnavailable}
)

// IsType reports whether err is an APIError of type t.
func IsType(err error, t ErrorType) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Type == t
	}
	return false
}

// AsAPIError extracts the APIError from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// External wraps a downstream failure verbatim as ExternalServiceError
// tagged with the calling operation.
func External(method string, cause error) *APIError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return ExternalService(msg).
		WithMethod(method).
		WithSource(Source).
		WithCause(cause)
}
