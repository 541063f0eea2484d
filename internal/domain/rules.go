package domain

import (
	"strings"
	"unicode/utf8"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func requireText(field, value string, maxLen int) error {
	if isBlank(value) {
		return NewValidationError(field, "is required")
	}
	if runeLen(value) > maxLen {
		return NewValidationError(field, "cannot exceed %d characters", maxLen)
	}
	return nil
}

func optionalText(field, value string, maxLen int) error {
	if runeLen(value) > maxLen {
		return NewValidationError(field, "cannot exceed %d characters", maxLen)
	}
	return nil
}

func textBetween(field, value string, minLen, maxLen int) error {
	n := runeLen(value)
	if isBlank(value) || n < minLen || n > maxLen {
		return NewValidationError(field, "must be between %d and %d characters long", minLen, maxLen)
	}
	return nil
}
