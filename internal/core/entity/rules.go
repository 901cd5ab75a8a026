package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rentora/internal/core/apperror"
	"rentora/internal/core/id"
)

// Field rules shared by entity Validate implementations.
// Lengths are counted in runes.

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RequireText fails when value is blank.
func RequireText(field, value string) error {
	if IsBlank(value) {
		return apperror.NewFieldValidation(field, field+" is required")
	}
	return nil
}

// RequireNonEmpty fails when value is the empty string.
func RequireNonEmpty(field, value string) error {
	if value == "" {
		return apperror.NewFieldValidation(field, field+" is required")
	}
	return nil
}

// LengthAbove fails unless len(value) > min.
func LengthAbove(field, value string, min int) error {
	if n := utf8.RuneCountInString(value); n <= min {
		return apperror.NewFieldValidation(field, fmt.Sprintf("%s must be longer than %d characters", field, min)).
			WithDetail("length", n)
	}
	return nil
}

// LengthAtMost fails unless len(value) <= max.
func LengthAtMost(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return apperror.NewFieldValidation(field, fmt.Sprintf("%s must be at most %d characters", field, max)).
			WithDetail("length", n)
	}
	return nil
}

// LengthIn fails unless min < len(value) <= max.
func LengthIn(field, value string, min, max int) error {
	if err := LengthAbove(field, value, min); err != nil {
		return err
	}
	return LengthAtMost(field, value, max)
}

// RequireID fails when ref is the nil UUID.
func RequireID(field string, ref id.ID) error {
	if id.IsNil(ref) {
		return apperror.NewFieldValidation(field, field+" is required")
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
