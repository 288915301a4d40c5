package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator and collects field errors.
type Validator struct {
	v      *validator.Validate
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		v:      validator.New(validator.WithRequiredStructEnabled()),
		Errors: make(map[string]string),
	}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Struct runs tag validation on s and records each failing field.
func (v *Validator) Struct(s interface{}) {
	err := v.v.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError("_", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		v.AddError(toSnake(fe.Field()), message(fe))
	}
}

// Amount checks a cent amount is within platform limits.
func (v *Validator) Amount(field string, cents int64) {
	v.Check(cents >= MinTransactionAmount && cents <= MaxTransactionAmount, field,
		fmt.Sprintf("must be between %d and %d cents", MinTransactionAmount, MaxTransactionAmount))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must not be longer than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "dive":
		return "contains an invalid item"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (s[i-1] < 'A' || s[i-1] > 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
