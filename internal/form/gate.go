package form

import (
	"strings"

	"rhystmorgan/onboard/internal/validation"
)

// CanAdvance reports whether every required field of step has a value and
// no error.
func CanAdvance(step Step, rec Record, errs validation.ErrorMap) bool {
	for _, f := range step.Required() {
		if strings.TrimSpace(rec[f]) == "" {
			return false
		}
		if errs.Get(f) != "" {
			return false
		}
	}
	return true
}

// CanAdvance evaluates the gate for the current step.
func (s State) CanAdvance() bool {
	return CanAdvance(s.CurrentStep(), s.record, s.errors)
}

func (s State) LastStep() bool {
	return s.step == s.variant.TotalSteps()
}

// Next moves forward one step when the gate allows it.
func (s State) Next() State {
	if s.LastStep() || !s.CanAdvance() {
		return s
	}
	next := s
	next.step++
	return next
}

// Back moves to the previous step. It never consults the gate.
func (s State) Back() State {
	if s.step <= 1 {
		return s
	}
	next := s
	next.step--
	return next
}

// CanSubmit reports whether the submit control should be enabled: nothing
// is in flight, no field error is shown and no required field is empty.
// A global error never blocks a new attempt.
func (s State) CanSubmit() bool {
	if s.status == Submitting || s.errors.AnyField() {
		return false
	}
	for _, step := range s.variant.Steps {
		for _, f := range step.Required() {
			if strings.TrimSpace(s.record[f]) == "" {
				return false
			}
		}
	}
	return true
}

// firstStepWithError returns the earliest step holding a field error, or
// the current step when only a global error is present.
func (s State) firstStepWithError() int {
	first := 0
	for key, msg := range s.errors {
		if msg == "" {
			continue
		}
		f, err := validation.ParseField(key)
		if err != nil {
			continue
		}
		if step := s.variant.StepOf(f); step > 0 && (first == 0 || step < first) {
			first = step
		}
	}
	if first == 0 {
		return s.step
	}
	return first
}
