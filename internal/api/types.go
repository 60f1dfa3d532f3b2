package api

import (
	"encoding/json"
	"time"

	"rhystmorgan/onboard/internal/validation"
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Payload is the transport-neutral body of a submission. JSON submitters
// send Fields as an object; multipart submitters send Fields as form
// values and Attachments as file parts.
type Payload struct {
	Fields      map[string]string
	Attachments []Attachment
}

// Attachment references a local file to upload under Field.
type Attachment struct {
	Field string
	Path  string
}

// Result is the outcome of one submission. Exactly one of Success,
// Errors or Error is meaningful.
type Result struct {
	Success bool
	Data    json.RawMessage
	Errors  validation.ErrorMap
	Error   string
}

type ErrorType string

const (
	ErrNetworkConnection  ErrorType = "network_connection"
	ErrTimeout            ErrorType = "timeout"
	ErrRateLimited        ErrorType = "rate_limited"
	ErrServerUnavailable  ErrorType = "server_unavailable"
	ErrInvalidRequest     ErrorType = "invalid_request"
	ErrInvalidResponse    ErrorType = "invalid_response"
	ErrUnexpectedResponse ErrorType = "unexpected_response"
)

type Error struct {
	Type    ErrorType
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
