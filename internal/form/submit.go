package form

import (
	"context"
	"sort"
	"strings"

	"rhystmorgan/onboard/internal/api"
	"rhystmorgan/onboard/internal/validation"
)

const (
	pixTypeUndetermined = "Could not detect the PIX key type"
)

// Validate re-derives every error from the current values, ignoring any
// cached per-field errors, and applies the PIX type consistency rule.
func (s State) Validate() validation.ErrorMap {
	v := s.variant.validator
	errs := validation.ErrorMap{}

	for _, f := range s.variant.fields {
		if f.Derived() {
			continue
		}
		value := s.record[f]
		if f.Optional() && value == "" {
			continue
		}
		if msg := v.Validate(f, value); msg != "" {
			errs[f.String()] = msg
		}
	}

	if s.variant.Has(validation.FieldPix) {
		raw := s.record[validation.FieldPix]
		key := validation.ClassifyPixKey(raw)
		if !key.Determined() {
			errs[validation.FieldPixType.String()] = pixTypeUndetermined
		} else if msg := validation.CheckPixConsistency(key.Type, raw); msg != "" && !errs.Has(validation.FieldPix.String()) {
			errs[validation.FieldPix.String()] = msg
		}
	}

	return errs
}

// BeginSubmit validates the whole form and, when it is clean, moves to
// Submitting. The boolean reports whether the caller should send the
// payload. A state that is already submitting is returned unchanged.
func (s State) BeginSubmit() (State, bool) {
	if s.status == Submitting {
		return s, false
	}

	next := s.clone()
	next.errors = s.Validate()
	next.message = ""

	if len(next.errors) > 0 {
		next.step = next.firstStepWithError()
		return next, false
	}

	next.status = Submitting
	return next, true
}

// CompleteSubmit folds the submission outcome into the state. Success
// resets the form; field errors from the server overwrite local ones for
// the keys they name; anything else becomes the global error.
func (s State) CompleteSubmit(r api.Result) State {
	if s.status != Submitting {
		return s
	}

	if r.Success {
		fresh := New(s.variant)
		fresh.status = Succeeded
		fresh.message = s.variant.SuccessMessage
		return fresh
	}

	next := s.clone()
	next.status = Failed

	if len(r.Errors) > 0 {
		fieldErrs, rest := s.splitServerErrors(r.Errors)
		next.errors = next.errors.Merge(fieldErrs)
		if rest != "" {
			next.errors[validation.GlobalKey] = rest
		}
		next.step = next.firstStepWithError()
		return next
	}

	msg := r.Error
	if msg == "" {
		msg = api.UnknownErrorMessage
	}
	next.errors[validation.GlobalKey] = msg
	return next
}

// splitServerErrors separates errors for this variant's fields from keys no
// field renders, such as non_field_errors or detail. The latter are joined
// in key order into one global message.
func (s State) splitServerErrors(errs validation.ErrorMap) (validation.ErrorMap, string) {
	fieldErrs := make(validation.ErrorMap, len(errs))
	var other []string
	for key, msg := range errs {
		if msg == "" {
			continue
		}
		if f, err := validation.ParseField(key); err == nil && s.variant.Has(f) {
			fieldErrs[key] = msg
			continue
		}
		other = append(other, key)
	}

	sort.Strings(other)
	msgs := make([]string, 0, len(other))
	for _, key := range other {
		msgs = append(msgs, errs[key])
	}
	return fieldErrs, strings.Join(msgs, " ")
}

// Submit runs a whole submission synchronously. No call is made when the
// form is already submitting or fails validation.
func (s State) Submit(ctx context.Context, sub Submitter) State {
	next, ok := s.BeginSubmit()
	if !ok {
		return next
	}
	return next.CompleteSubmit(sub.Submit(ctx, next.Payload()))
}

// Payload builds the transport body. Dates are sent as YYYY-MM-DD, the PIX
// key in its normalized form and file fields as attachments.
func (s State) Payload() api.Payload {
	p := api.Payload{Fields: make(map[string]string, len(s.variant.fields))}

	for _, f := range s.variant.fields {
		value := s.record[f]

		switch {
		case f.Attachment():
			if value != "" {
				p.Attachments = append(p.Attachments, api.Attachment{Field: f.String(), Path: value})
			}
			continue
		case f == validation.FieldBirthDate:
			value = validation.ToISODate(value)
		case f == validation.FieldPix:
			if key := validation.ClassifyPixKey(value); key.Determined() {
				value = key.Key
			}
		}

		p.Fields[f.String()] = value
	}

	return p
}
