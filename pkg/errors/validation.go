package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a user-supplied column name before it is used
// to index a table.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//
// Presence of the column in a concrete table is checked separately by the
// table itself.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidColumn, "column name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateScaleID validates an electronegativity scale identifier.
// Identifiers follow the dataset convention of lowercase words separated by
// underscores, with an optional "en_" prefix (e.g. "en_pauling",
// "en_allred_rochow").
func ValidateScaleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScale, "scale identifier cannot be empty")
	}

	for _, r := range id {
		if r == '_' || unicode.IsLower(r) || unicode.IsDigit(r) {
			continue
		}
		return New(ErrCodeInvalidScale, "scale identifier %q must be lowercase words separated by underscores", id)
	}

	if strings.HasPrefix(id, "_") || strings.HasSuffix(id, "_") {
		return New(ErrCodeInvalidScale, "scale identifier %q cannot start or end with an underscore", id)
	}

	return nil
}
