package validation

import (
	"strings"
)

// Normalize returns the stored form of a raw field value. Masked numeric
// fields keep only their decimal digits; everything else is returned as
// typed.
func Normalize(f Field, raw string) string {
	if f.Masked() {
		return OnlyDigits(raw)
	}
	return raw
}

// OnlyDigits strips every character that is not an ASCII decimal digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
