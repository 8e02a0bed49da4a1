package errors

import "unicode"

// ValidateEventID validates an event identifier.
// Identifiers end up in document JSON, SVG element ids and cache keys, so
// they are kept printable and bounded:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateEventID(id string) error {
	if id == "" {
		return New(ErrCodeMalformedEvent, "event id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeMalformedEvent, "event id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedEvent, "event id contains invalid control characters")
		}
	}

	return nil
}
