package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLen bounds symbol names and designators.
const maxIdentifierLen = 128

// ValidateIdentifier checks a symbol name or reference designator.
//
// Library records are whitespace separated and field values are quoted, so an
// identifier must be non-empty and free of whitespace, quotes and control
// characters. field names the value in the returned INVALID_SPEC error.
func ValidateIdentifier(field, value string) error {
	if value == "" {
		return New(ErrCodeInvalidSpec, "%s cannot be empty", field)
	}

	if len(value) > maxIdentifierLen {
		return New(ErrCodeInvalidSpec, "%s too long (max %d characters)", field, maxIdentifierLen)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "%s contains control characters", field)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidSpec, "%s %q contains whitespace", field, value)
		}
	}

	if strings.ContainsAny(value, `"\`) {
		return New(ErrCodeInvalidSpec, "%s %q contains quote or backslash", field, value)
	}

	return nil
}
