package errors

import (
	"unicode"
)

// ValidateElementID validates a node or edge identifier from graph data.
// It rejects identifiers that would break downstream serialization or
// selector generation.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
//
// Semantic checks (uniqueness, endpoint existence) are done by the scene
// adapter, not here.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "element id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "element id contains control characters")
		}
	}

	return nil
}
