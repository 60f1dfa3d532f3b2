package validation

import (
	"fmt"
)

// Field identifies a form field. The set is closed: every field a form
// variant can carry is declared here, so rule dispatch never falls back
// to a string lookup.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldCPF
	FieldRG
	FieldBirthDate
	FieldZipCode
	FieldCity
	FieldNumber
	FieldStreet
	FieldNeighborhood
	FieldUF
	FieldPix
	FieldPixType
	FieldBank
	FieldAgency
	FieldAccountNumber
	FieldAccountType
	FieldTitle
	FieldThumbnail
	FieldFile

	fieldCount
)

// fieldNames holds the wire name of each field, used for payload keys and
// ErrorMap keys.
var fieldNames = [fieldCount]string{
	FieldName:          "name",
	FieldEmail:         "email",
	FieldPhone:         "phone",
	FieldCPF:           "cpf",
	FieldRG:            "rg",
	FieldBirthDate:     "birthDate",
	FieldZipCode:       "zipCode",
	FieldCity:          "city",
	FieldNumber:        "number",
	FieldStreet:        "street",
	FieldNeighborhood:  "neighborhood",
	FieldUF:            "uf",
	FieldPix:           "pix",
	FieldPixType:       "pixType",
	FieldBank:          "bank",
	FieldAgency:        "agency",
	FieldAccountNumber: "accountNumber",
	FieldAccountType:   "accountType",
	FieldTitle:         "title",
	FieldThumbnail:     "thumbnail",
	FieldFile:          "file",
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// Masked reports whether the field is entered through a numeric mask and
// is stored digits-only.
func (f Field) Masked() bool {
	switch f {
	case FieldPhone, FieldCPF, FieldZipCode, FieldNumber:
		return true
	default:
		return false
	}
}

// Optional reports whether the field may be left empty.
func (f Field) Optional() bool {
	return f == FieldThumbnail
}

// Derived reports whether the field is computed from another field and
// cannot be edited directly.
func (f Field) Derived() bool {
	return f == FieldPixType
}

// Attachment reports whether the field references a local file.
func (f Field) Attachment() bool {
	return f == FieldThumbnail || f == FieldFile
}

// ParseField maps a wire name back to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field: %q", name)
}

// AddressFields are the fields filled in by a postal code lookup.
var AddressFields = []Field{FieldStreet, FieldNeighborhood, FieldCity, FieldUF}

// GlobalKey is the reserved ErrorMap key for form-wide errors.
const GlobalKey = "global"

// ErrorMap maps a field's wire name to its current error message. A
// missing key or an empty message means the field is valid.
type ErrorMap map[string]string

// Get returns the message for f.
func (e ErrorMap) Get(f Field) string {
	return e[f.String()]
}

// Has reports whether key carries a non-empty message.
func (e ErrorMap) Has(key string) bool {
	return e[key] != ""
}

// Global returns the form-wide error, if any.
func (e ErrorMap) Global() string {
	return e[GlobalKey]
}

// AnyField reports whether a field, not the form-wide key, carries a
// non-empty message.
func (e ErrorMap) AnyField() bool {
	for key, msg := range e {
		if key != GlobalKey && msg != "" {
			return true
		}
	}
	return false
}

// Clone returns a copy that can be modified without affecting e.
func (e ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge returns a copy of e with every entry of other written over it.
func (e ErrorMap) Merge(other ErrorMap) ErrorMap {
	out := e.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}
