package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// Password checks admin password strength.
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength, field,
		fmt.Sprintf("must be between %d and %d characters", MinPasswordLength, MaxPasswordLength))

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	v.Check(hasUpper && hasDigit && HasSpecialChar(password), field,
		"must contain an uppercase letter, a digit and a special character")
}
