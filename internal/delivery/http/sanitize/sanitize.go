// Package sanitize holds the pure input transforms applied to request values
// before they reach the usecases.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

const maxFieldLength = 128

// strict strips every tag. bluemonday policies are safe for concurrent use
// once built.
var strict = bluemonday.StrictPolicy()

// Clean removes markup and control characters and trims the result.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(strict.Sanitize(s))
	if len(s) > maxFieldLength {
		s = s[:maxFieldLength]
	}
	return s
}

// InvoiceID cleans s and keeps only characters valid in an invoice
// reference: letters, digits, '-' and '_'.
func InvoiceID(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return -1
	}, Clean(s))
}
