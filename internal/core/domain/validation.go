package domain

import "fmt"

// ValidationResponse is a single failed field.
type ValidationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationKind selects the rule a ValidationType applies.
type ValidationKind uint8

const (
	ValidateNone ValidationKind = iota
	ValidateStringLength
	ValidateDateRange
	ValidateEmail
	ValidateCount
)

// ValidationType is a tagged rule. Only the fields relevant to Kind are read.
type ValidationType struct {
	Kind  ValidationKind `json:"kind"`
	Str   string         `json:"str,omitempty"`
	Range DateRange      `json:"range,omitempty"`
	Value int            `json:"value,omitempty"`
	Min   int            `json:"min,omitempty"`
	Max   int            `json:"max,omitempty"`
}

// StringLength checks value has between min and max grapheme clusters.
func StringLength(value string, min, max int) ValidationType {
	return ValidationType{Kind: ValidateStringLength, Str: value, Min: min, Max: max}
}

// DateRangeRule checks the range is ordered and does not start in the past.
func DateRangeRule(r DateRange) ValidationType {
	return ValidationType{Kind: ValidateDateRange, Range: r}
}

// Email checks value is a bare email address.
func Email(value string) ValidationType {
	return ValidationType{Kind: ValidateEmail, Str: value}
}

// Count checks value lies within min and max.
func Count(value, min, max int) ValidationType {
	return ValidationType{Kind: ValidateCount, Value: value, Min: min, Max: max}
}

func (v ValidationType) String() string {
	switch v.Kind {
	case ValidateStringLength:
		return fmt.Sprintf("StringLength - value: %s, min: %d, max: %d", v.Str, v.Min, v.Max)
	case ValidateDateRange:
		return fmt.Sprintf("DateRange - %d..%d", v.Range.StartDate, v.Range.EndDate)
	case ValidateEmail:
		return fmt.Sprintf("Email - %q", v.Str)
	case ValidateCount:
		return fmt.Sprintf("Count - value: %d, min: %d, max: %d", v.Value, v.Min, v.Max)
	default:
		return "None"
	}
}

// ValidateField binds a rule to the field name reported on failure.
type ValidateField struct {
	Type  ValidationType `json:"type"`
	Field string         `json:"field"`
}

// Field is shorthand for building a ValidateField.
func Field(name string, t ValidationType) ValidateField {
	return ValidateField{Type: t, Field: name}
}
