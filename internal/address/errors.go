package address

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the directory has no entry for the code.
	ErrNotFound = errors.New("postal code not found")

	// ErrInvalidPostalCode is returned for codes that are not exactly 8 digits.
	ErrInvalidPostalCode = errors.New("postal code must have 8 digits")
)

// LookupError describes a transport or protocol failure talking to the
// directory.
type LookupError struct {
	PostalCode string
	Status     int
	Cause      error
}

func (e *LookupError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("lookup %s: %v", e.PostalCode, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("lookup %s: unexpected status %d", e.PostalCode, e.Status)
	default:
		return fmt.Sprintf("lookup %s failed", e.PostalCode)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
