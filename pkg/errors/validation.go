package errors

import (
	"strings"
	"unicode"
)

// maxSKULength bounds SKU identifiers accepted from layouts and requests.
const maxSKULength = 64

// ValidateSKU checks that a SKU is usable as an index key.
//
// The rules are conservative:
//   - No empty SKUs
//   - No whitespace or control characters
//   - Maximum length of 64 characters
func ValidateSKU(sku string) error {
	if sku == "" {
		return New(ErrCodeInvalidInput, "sku cannot be empty")
	}
	if len(sku) > maxSKULength {
		return New(ErrCodeInvalidInput, "sku too long (max %d characters)", maxSKULength)
	}
	for _, r := range sku {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "sku %q contains whitespace or control characters", sku)
		}
	}
	return nil
}

// ValidateLabel checks a location label. Labels are shown in DOT record
// nodes, so the record separators |, { and } are rejected.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "location label cannot be empty")
	}
	if strings.ContainsAny(label, "|{}") {
		return New(ErrCodeInvalidInput, "location label %q cannot contain '|', '{' or '}'", label)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "location label contains invalid control characters")
		}
	}
	return nil
}

// ValidateDelta checks that a stock movement quantity is strictly positive.
func ValidateDelta(delta int) error {
	if delta <= 0 {
		return New(ErrCodeInvalidInput, "quantity must be positive (got %d)", delta)
	}
	return nil
}
