package form

import (
	"context"
	"strings"

	"rhystmorgan/onboard/internal/address"
	"rhystmorgan/onboard/internal/validation"
)

// Record maps each field to its normalized value.
type Record map[validation.Field]string

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Submission int

const (
	Idle Submission = iota
	Submitting
	Succeeded
	Failed
)

func (s Submission) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the authoritative value of one form. Transitions are methods on
// a value receiver that return the next State; the receiver is never
// modified.
type State struct {
	variant *Variant
	record  Record
	errors  validation.ErrorMap
	pix     validation.PixKey
	step    int
	status  Submission
	message string

	// postal code awaiting an address lookup, "" when none
	pendingLookup string
}

// New returns the initial state of variant with every field empty.
func New(variant *Variant) State {
	record := make(Record, len(variant.fields))
	for _, f := range variant.fields {
		record[f] = ""
	}

	return State{
		variant: variant,
		record:  record,
		errors:  validation.ErrorMap{},
		step:    1,
		status:  Idle,
	}
}

func (s State) clone() State {
	next := s
	next.record = s.record.clone()
	next.errors = s.errors.Clone()
	return next
}

func (s State) Variant() *Variant {
	return s.variant
}

func (s State) Value(f validation.Field) string {
	return s.record[f]
}

// Record returns a copy of the current values.
func (s State) Record() Record {
	return s.record.clone()
}

func (s State) Error(f validation.Field) string {
	return s.errors.Get(f)
}

// Errors returns a copy of the current error map.
func (s State) Errors() validation.ErrorMap {
	return s.errors.Clone()
}

func (s State) GlobalError() string {
	return s.errors.Global()
}

func (s State) Pix() validation.PixKey {
	return s.pix
}

// Step returns the current 1-based step.
func (s State) Step() int {
	return s.step
}

func (s State) CurrentStep() Step {
	return s.variant.Steps[s.step-1]
}

func (s State) Status() Submission {
	return s.status
}

// Message is the confirmation shown after a successful submission.
func (s State) Message() string {
	return s.message
}

// LookupPending reports whether an address lookup is in flight.
func (s State) LookupPending() bool {
	return s.pendingLookup != ""
}

// Editable reports whether the user may change f. Derived fields never
// are; address fields are locked while a lookup is in flight.
func (s State) Editable(f validation.Field) bool {
	if !s.variant.Has(f) || f.Derived() {
		return false
	}
	if s.LookupPending() && isAddressField(f) {
		return false
	}
	return true
}

func isAddressField(f validation.Field) bool {
	for _, a := range validation.AddressFields {
		if a == f {
			return true
		}
	}
	return false
}

// LookupRequest asks the caller to resolve a complete postal code and feed
// the outcome back through ApplyLookup.
type LookupRequest struct {
	PostalCode string
}

// LookupResult is the outcome of a LookupRequest.
type LookupResult struct {
	Request LookupRequest
	Address address.Address
	Err     error
}

// Resolve performs the lookup. It never fails; errors travel in the result.
func (r LookupRequest) Resolve(ctx context.Context, lookup AddressLookup) LookupResult {
	addr, err := lookup.Lookup(ctx, r.PostalCode)
	return LookupResult{Request: r, Address: addr, Err: err}
}

// Change applies a user edit to f. The value is normalized and stored, the
// field's previous error is replaced by the result of its rule, and the
// dependent work for pix and zipCode runs. A non-nil LookupRequest is
// returned when the postal code just became complete; re-entering the
// same digits never asks again.
func (s State) Change(f validation.Field, raw string) (State, *LookupRequest) {
	if !s.Editable(f) {
		return s, nil
	}

	next := s.clone()
	value := validation.Normalize(f, raw)
	next.record[f] = value

	delete(next.errors, f.String())
	if msg := s.variant.validator.Validate(f, value); msg != "" && !(f.Optional() && value == "") {
		next.errors[f.String()] = msg
	}

	if next.status == Succeeded || next.status == Failed {
		next.status = Idle
		next.message = ""
	}

	var req *LookupRequest
	switch f {
	case validation.FieldPix:
		next.classifyPix()
	case validation.FieldZipCode:
		if value != s.record[f] {
			req = next.zipCodeChanged()
		}
	}

	return next, req
}

// classifyPix mirrors the detected key type into the pixType field.
func (s *State) classifyPix() {
	s.pix = validation.ClassifyPixKey(s.record[validation.FieldPix])
	if !s.variant.Has(validation.FieldPixType) {
		return
	}
	s.record[validation.FieldPixType] = string(s.pix.Type)
	if s.pix.Determined() {
		delete(s.errors, validation.FieldPixType.String())
	}
}

func (s *State) zipCodeChanged() *LookupRequest {
	cep := s.record[validation.FieldZipCode]

	switch {
	case len(cep) == 8:
		s.pendingLookup = cep
		return &LookupRequest{PostalCode: cep}
	case len(cep) < 8:
		s.pendingLookup = ""
		for _, f := range validation.AddressFields {
			if s.variant.Has(f) {
				s.record[f] = ""
				delete(s.errors, f.String())
			}
		}
	default:
		s.pendingLookup = ""
	}
	return nil
}

// ApplyLookup folds a lookup outcome into the state. Responses for a
// postal code that is no longer current are dropped. A found address
// overwrites the address fields and clears the postal code error; a
// missing entry or a transport failure leaves the fields as they are.
func (s State) ApplyLookup(res LookupResult) State {
	cep := res.Request.PostalCode
	if cep == "" || s.pendingLookup != cep || s.record[validation.FieldZipCode] != cep {
		return s
	}

	next := s.clone()
	next.pendingLookup = ""

	// Not found and transport failures are both silent.
	if res.Err != nil {
		return next
	}

	values := map[validation.Field]string{
		validation.FieldStreet:       res.Address.Street,
		validation.FieldNeighborhood: res.Address.Neighborhood,
		validation.FieldCity:         res.Address.City,
		validation.FieldUF:           res.Address.UF,
	}
	for f, v := range values {
		if !next.variant.Has(f) {
			continue
		}
		next.record[f] = v
		if strings.TrimSpace(v) != "" {
			delete(next.errors, f.String())
		}
	}
	delete(next.errors, validation.FieldZipCode.String())

	return next
}
