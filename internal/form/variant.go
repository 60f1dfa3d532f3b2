// Package form holds the state machine behind every onboarding form: field
// normalization and validation on change, postal code autofill, PIX key
// classification, wizard step gating and the submission lifecycle.
package form

import (
	"fmt"

	"rhystmorgan/onboard/internal/validation"
)

// Step is one page of a form and the fields it collects.
type Step struct {
	Title  string
	Fields []validation.Field
}

// Required returns the step's fields that must be filled to advance.
func (s Step) Required() []validation.Field {
	out := make([]validation.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Optional() {
			out = append(out, f)
		}
	}
	return out
}

// Variant is a fixed field set split into one or more steps.
type Variant struct {
	Name           string
	Steps          []Step
	SuccessMessage string

	validator *validation.Validator
	fields    []validation.Field
	stepOf    map[validation.Field]int
}

// NewVariant checks that every field has a validation rule and appears in
// exactly one step.
func NewVariant(name, successMessage string, v *validation.Validator, steps ...Step) (*Variant, error) {
	if v == nil {
		return nil, fmt.Errorf("variant %s: validator is required", name)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("variant %s: at least one step is required", name)
	}

	variant := &Variant{
		Name:           name,
		Steps:          steps,
		SuccessMessage: successMessage,
		validator:      v,
		stepOf:         make(map[validation.Field]int),
	}

	for i, step := range steps {
		if len(step.Fields) == 0 {
			return nil, fmt.Errorf("variant %s: step %d has no fields", name, i+1)
		}
		for _, f := range step.Fields {
			if !f.Valid() {
				return nil, fmt.Errorf("variant %s: unknown field %d", name, int(f))
			}
			if !v.Has(f) {
				return nil, fmt.Errorf("variant %s: field %s has no validation rule", name, f)
			}
			if prev, dup := variant.stepOf[f]; dup {
				return nil, fmt.Errorf("variant %s: field %s listed in steps %d and %d", name, f, prev, i+1)
			}
			variant.stepOf[f] = i + 1
			variant.fields = append(variant.fields, f)
		}
	}

	return variant, nil
}

func mustVariant(v *Variant, err error) *Variant {
	if err != nil {
		panic(err)
	}
	return v
}

// Fields returns every field of the variant in step order.
func (v *Variant) Fields() []validation.Field {
	return append([]validation.Field(nil), v.fields...)
}

// Has reports whether f belongs to the variant.
func (v *Variant) Has(f validation.Field) bool {
	_, ok := v.stepOf[f]
	return ok
}

// StepOf returns the 1-based step that collects f, or 0.
func (v *Variant) StepOf(f validation.Field) int {
	return v.stepOf[f]
}

func (v *Variant) TotalSteps() int {
	return len(v.Steps)
}

func (v *Variant) Validator() *validation.Validator {
	return v.validator
}

var (
	personalFields = []validation.Field{
		validation.FieldName,
		validation.FieldEmail,
		validation.FieldPhone,
		validation.FieldCPF,
		validation.FieldRG,
		validation.FieldBirthDate,
	}
	addressFields = []validation.Field{
		validation.FieldZipCode,
		validation.FieldStreet,
		validation.FieldNumber,
		validation.FieldNeighborhood,
		validation.FieldCity,
		validation.FieldUF,
	}
	bankingFields = []validation.Field{
		validation.FieldPix,
		validation.FieldPixType,
		validation.FieldBank,
		validation.FieldAgency,
		validation.FieldAccountNumber,
		validation.FieldAccountType,
	}
)

// Registration collects the whole partner record on a single page.
func Registration(v *validation.Validator) *Variant {
	all := make([]validation.Field, 0, len(personalFields)+len(addressFields)+len(bankingFields))
	all = append(all, personalFields...)
	all = append(all, addressFields...)
	all = append(all, bankingFields...)

	return mustVariant(NewVariant("registration", "Registration completed successfully!", v,
		Step{Title: "Partner registration", Fields: all},
	))
}

// Onboarding collects the partner record over three gated steps.
func Onboarding(v *validation.Validator) *Variant {
	return mustVariant(NewVariant("onboarding", "Registration completed successfully!", v,
		Step{Title: "Personal details", Fields: personalFields},
		Step{Title: "Address", Fields: addressFields},
		Step{Title: "Banking details", Fields: bankingFields},
	))
}

// MediaUpload collects a video with its title and optional thumbnail.
func MediaUpload(v *validation.Validator) *Variant {
	return mustVariant(NewVariant("media", "Video uploaded successfully!", v,
		Step{Title: "Upload video", Fields: []validation.Field{
			validation.FieldTitle,
			validation.FieldThumbnail,
			validation.FieldFile,
		}},
	))
}
