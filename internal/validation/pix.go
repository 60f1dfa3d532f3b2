package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// PixType is the detected kind of a PIX key. The values are the ones the
// partner API expects.
type PixType string

const (
	PixUndetermined PixType = ""
	PixEmail        PixType = "email"
	PixCPF          PixType = "cpf"
	PixPhone        PixType = "telefone"
	PixRandom       PixType = "aleatoria"
)

// PixKey is the classification of a PIX key value.
type PixKey struct {
	Type PixType
	Key  string
}

// Determined reports whether a type was detected.
func (k PixKey) Determined() bool {
	return k.Type != PixUndetermined
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	elevenDigits  = regexp.MustCompile(`^\d{11}$`)
)

// IsValidEmail reports whether v has a local@domain.tld shape.
func IsValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}

// IsValidUUIDv4 reports whether v is a lower or upper case version 4
// UUID in the canonical 8-4-4-4-12 grouping.
func IsValidUUIDv4(v string) bool {
	lower := strings.ToLower(v)
	if !uuidV4Pattern.MatchString(lower) {
		return false
	}
	id, err := uuid.Parse(lower)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}

// ClassifyPixKey detects the type of a PIX key. Rules are tried in a fixed
// order and the first match wins: email, random key, CPF, phone.
func ClassifyPixKey(raw string) PixKey {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	digits := OnlyDigits(trimmed)

	switch {
	case IsValidEmail(lower):
		return PixKey{Type: PixEmail, Key: NormalizePixKey(PixEmail, lower)}
	case IsValidUUIDv4(lower):
		return PixKey{Type: PixRandom, Key: NormalizePixKey(PixRandom, lower)}
	case len(digits) == 11 && IsValidCPF(digits):
		return PixKey{Type: PixCPF, Key: NormalizePixKey(PixCPF, trimmed)}
	case len(digits) == 11:
		return PixKey{Type: PixPhone, Key: NormalizePixKey(PixPhone, trimmed)}
	default:
		return PixKey{}
	}
}

// NormalizePixKey returns the canonical form of value for key type t.
func NormalizePixKey(t PixType, value string) string {
	if value == "" {
		return ""
	}
	switch t {
	case PixEmail:
		return strings.ToLower(strings.TrimSpace(value))
	case PixCPF:
		return OnlyDigits(value)
	case PixPhone:
		digits := OnlyDigits(value)
		if len(digits) > 11 {
			digits = digits[len(digits)-11:]
		}
		return digits
	case PixRandom:
		return strings.ToLower(value)
	default:
		return ""
	}
}

// CheckPixConsistency returns an error message when value does not have
// the format of key type t. Undetermined types are reported separately on
// the pixType field.
func CheckPixConsistency(t PixType, value string) string {
	switch t {
	case PixEmail:
		if !IsValidEmail(strings.TrimSpace(value)) {
			return "Invalid PIX email"
		}
	case PixCPF:
		if !elevenDigits.MatchString(value) {
			return "PIX CPF must have 11 digits, numbers only"
		}
	case PixPhone:
		if !elevenDigits.MatchString(value) {
			return "PIX phone must have 11 digits, numbers only"
		}
	case PixRandom:
		if !IsValidUUIDv4(strings.TrimSpace(value)) {
			return "Invalid random PIX key"
		}
	}
	return ""
}
