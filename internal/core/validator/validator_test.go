package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/canikit-go/internal/core/domain"
)

func fixedClock(ns uint64) Option {
	return WithClock(func() uint64 { return ns })
}

func validationOf(t *testing.T, err error) []domain.ValidationResponse {
	t.Helper()
	ae, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.Type != domain.TypeValidationError {
		t.Fatalf("Type = %s, want ValidationError", ae.Type)
	}
	return ae.Validation
}

func TestValidate_AggregatesFailures(t *testing.T) {
	v := New([]domain.ValidateField{
		domain.Field("name", domain.StringLength("ab", 3, 64)),
		domain.Field("email", domain.Email("not-an-email")),
		domain.Field("ok", domain.StringLength("fine", 1, 10)),
	})

	got := validationOf(t, v.Validate())
	if len(got) != 2 {
		t.Fatalf("got %d responses, want 2: %+v", len(got), got)
	}
	if got[0].Field != "name" || got[0].Message != "Minimum required length is 3" {
		t.Errorf("first response = %+v", got[0])
	}
	if got[1].Field != "email" {
		t.Errorf("second response = %+v", got[1])
	}
}

func TestValidate_Pass(t *testing.T) {
	v := New([]domain.ValidateField{
		domain.Field("none", domain.ValidationType{}),
		domain.Field("name", domain.StringLength("héllo", 1, 5)),
		domain.Field("email", domain.Email("dev@example.org")),
		domain.Field("count", domain.Count(3, 1, 3)),
		domain.Field("range", domain.DateRangeRule(domain.NewDateRange(200, 300))),
	}, fixedClock(100))

	if err := v.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		rule    domain.ValidationType
		message string
	}{
		{"too long", domain.StringLength("abcdef", 1, 5), "Maximum length is 5"},
		{"count low", domain.Count(0, 1, 5), "Minimum size length is 1"},
		{"count high", domain.Count(6, 1, 5), "Maximum size is 5"},
		{"range inverted", domain.DateRangeRule(domain.NewDateRange(300, 200)), "The start_date is after the end_date"},
		{"range in past", domain.DateRangeRule(domain.NewDateRange(50, 200)), "The start_date can't be in the past"},
		{"email with name", domain.Email("Dev <dev@example.org>"), "mail: expected a bare address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New([]domain.ValidateField{domain.Field("f", tt.rule)}, fixedClock(100)).Validate()
			got := validationOf(t, err)
			if len(got) != 1 || got[0].Message != tt.message {
				t.Errorf("responses = %+v, want message %q", got, tt.message)
			}
		})
	}
}

func TestValidate_ErrorIs(t *testing.T) {
	err := New([]domain.ValidateField{domain.Field("e", domain.Email("@"))}).Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "e: ") {
		t.Errorf("error text should name the field: %s", err)
	}
}
