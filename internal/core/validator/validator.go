// Package validator checks tagged field rules and reports every failing
// field in one ValidationError.
package validator

import (
	"fmt"
	"net/mail"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/pkg/strutil"
)

// Validator validates a fixed list of fields.
type Validator struct {
	fields []domain.ValidateField
	now    func() uint64
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used by date range rules.
func WithClock(now func() uint64) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a Validator for fields.
func New(fields []domain.ValidateField, opts ...Option) *Validator {
	v := &Validator{
		fields: fields,
		now:    domain.Clock,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every rule. It does not stop at the first failure.
func (v *Validator) Validate() error {
	var errs []domain.ValidationResponse

	for _, f := range v.fields {
		if resp, ok := v.validateField(f); !ok {
			errs = append(errs, resp)
		}
	}

	if len(errs) > 0 {
		return domain.ValidationFailed(errs).WithSource(domain.Source)
	}
	return nil
}

func (v *Validator) validateField(f domain.ValidateField) (domain.ValidationResponse, bool) {
	t := f.Type
	switch t.Kind {
	case domain.ValidateStringLength:
		return validateStringLength(t.Str, t.Min, t.Max, f.Field)
	case domain.ValidateDateRange:
		return v.validateDateRange(t.Range, f.Field)
	case domain.ValidateEmail:
		return validateEmail(t.Str, f.Field)
	case domain.ValidateCount:
		return validateCount(t.Value, t.Min, t.Max, f.Field)
	default:
		return domain.ValidationResponse{}, true
	}
}

func fail(field, message string) (domain.ValidationResponse, bool) {
	return domain.ValidationResponse{Field: field, Message: message}, false
}

func validateStringLength(value string, min, max int, field string) (domain.ValidationResponse, bool) {
	n := strutil.StrLen(value)
	if n < min {
		return fail(field, fmt.Sprintf("Minimum required length is %d", min))
	}
	if n > max {
		return fail(field, fmt.Sprintf("Maximum length is %d", max))
	}
	return domain.ValidationResponse{}, true
}

func validateCount(value, min, max int, field string) (domain.ValidationResponse, bool) {
	if value < min {
		return fail(field, fmt.Sprintf("Minimum size length is %d", min))
	}
	if value > max {
		return fail(field, fmt.Sprintf("Maximum size is %d", max))
	}
	return domain.ValidationResponse{}, true
}

// validateEmail accepts a bare address only; display names and angle
// brackets are rejected.
func validateEmail(value, field string) (domain.ValidationResponse, bool) {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return fail(field, err.Error())
	}
	if addr.Name != "" || addr.Address != value {
		return fail(field, "mail: expected a bare address")
	}
	return domain.ValidationResponse{}, true
}

func (v *Validator) validateDateRange(r domain.DateRange, field string) (domain.ValidationResponse, bool) {
	if r.StartDate > r.EndDate {
		return fail(field, "The start_date is after the end_date")
	}
	if r.StartDate < v.now() {
		return fail(field, "The start_date can't be in the past")
	}
	return domain.ValidationResponse{}, true
}
