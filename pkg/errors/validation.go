package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxIDLength    = 128
	maxTitleLength = 256
)

// ValidateID validates an entity or wire identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// ValidateTitle validates a block display title.
// Empty titles are allowed; line breaks and other control characters are not,
// since the title band is a single line.
func ValidateTitle(title string) error {
	if !utf8.ValidString(title) {
		return New(ErrCodeInvalidInput, "title is not valid UTF-8")
	}

	if utf8.RuneCountInString(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}

	if strings.IndexFunc(title, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidInput, "title contains control characters")
	}

	return nil
}
