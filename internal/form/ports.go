package form

import (
	"context"

	"rhystmorgan/onboard/internal/address"
	"rhystmorgan/onboard/internal/api"
)

// Submitter delivers a payload in a single attempt. It never fails; every
// outcome is described by the Result.
type Submitter interface {
	Submit(ctx context.Context, p api.Payload) api.Result
}

// AddressLookup resolves an 8-digit postal code.
type AddressLookup interface {
	Lookup(ctx context.Context, postalCode string) (address.Address, error)
}
