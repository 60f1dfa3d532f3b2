package validation

import (
	"regexp"
	"strings"
	"time"
)

// Rule maps a normalized field value to an error message, or "" when the
// value is valid.
type Rule func(value string) string

// Validator dispatches field values to their rule. Rules are stateless;
// the only dependency is the clock used for age checks.
type Validator struct {
	rules map[Field]Rule
	now   func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the time source used by date rules.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

var (
	phonePattern         = regexp.MustCompile(`^\d{11}$`)
	cpfPattern           = regexp.MustCompile(`^\d{11}$`)
	zipCodePattern       = regexp.MustCompile(`^\d{8}$`)
	agencyPattern        = regexp.MustCompile(`^\d{4,5}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{5,10}-?\d?$`)
)

// AccountTypes are the accepted values of the account type field.
var AccountTypes = []string{"corrente", "poupança"}

// NewValidator builds a Validator with a rule for every declared field.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	v.rules = map[Field]Rule{
		FieldName: func(s string) string {
			name := strings.TrimSpace(s)
			if name == "" {
				return "Enter your full name"
			}
			if len([]rune(name)) < 3 {
				return "Name is too short"
			}
			return ""
		},
		FieldEmail: func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "Enter your email"
			}
			if !IsValidEmail(s) {
				return "Invalid email"
			}
			return ""
		},
		FieldPhone: func(s string) string {
			if s == "" {
				return "Enter your phone number"
			}
			if !phonePattern.MatchString(s) {
				return "Phone number must have 11 digits"
			}
			return ""
		},
		FieldCPF: func(s string) string {
			if s == "" {
				return "Enter your CPF"
			}
			if !cpfPattern.MatchString(s) {
				return "CPF must have 11 digits"
			}
			if !IsValidCPF(s) {
				return "Invalid CPF"
			}
			return ""
		},
		FieldBirthDate: func(s string) string {
			return ValidateBirthDate(s, v.now())
		},
		FieldZipCode: func(s string) string {
			if s == "" {
				return "Enter your CEP"
			}
			if !zipCodePattern.MatchString(s) {
				return "CEP must have 8 digits"
			}
			return ""
		},
		FieldBank: func(s string) string {
			bank := strings.TrimSpace(s)
			if bank == "" {
				return "Enter the bank name"
			}
			if len([]rune(bank)) < 2 {
				return "Bank name is too short"
			}
			return ""
		},
		FieldAgency: func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "Enter the branch number"
			}
			if !agencyPattern.MatchString(s) {
				return "Invalid branch number"
			}
			return ""
		},
		FieldAccountNumber: func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "Enter the account number"
			}
			if !accountNumberPattern.MatchString(s) {
				return "Invalid account number"
			}
			return ""
		},
		FieldAccountType: func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "Select the account type"
			}
			for _, t := range AccountTypes {
				if strings.EqualFold(s, t) {
					return ""
				}
			}
			return "Invalid account type"
		},
		FieldRG:           required("Enter your RG"),
		FieldCity:         required("Enter your city"),
		FieldNumber:       required("Enter the house number"),
		FieldStreet:       required("Enter the street"),
		FieldNeighborhood: required("Enter the neighborhood"),
		FieldUF:           required("Enter your state"),
		FieldPix:          required("Enter the PIX key"),
		FieldPixType:      required("Could not detect the PIX key type"),
		FieldTitle:        required("Title is required"),
		FieldFile:         required("Video file is required"),
		FieldThumbnail:    func(string) string { return "" },
	}

	return v
}

func required(message string) Rule {
	return func(s string) string {
		if strings.TrimSpace(s) == "" {
			return message
		}
		return ""
	}
}

// Has reports whether f has a rule.
func (v *Validator) Has(f Field) bool {
	_, ok := v.rules[f]
	return ok
}

// Validate runs the rule for f against an already normalized value.
// Fields without a rule are reported valid; form variants refuse such
// fields at construction.
func (v *Validator) Validate(f Field, value string) string {
	rule, ok := v.rules[f]
	if !ok {
		return ""
	}
	return rule(value)
}
