package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewError(ErrNetworkConnection, "test message", cause)

	if err.Type != ErrNetworkConnection {
		t.Errorf("Expected type %s, got %s", ErrNetworkConnection, err.Type)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message 'test message', got '%s'", err.Message)
	}

	if err.Cause != cause {
		t.Errorf("Expected cause %v, got %v", cause, err.Cause)
	}
}

func TestErrorError(t *testing.T) {
	err := NewError(ErrInvalidRequest, "bad request", nil)
	if err.Error() != "bad request" {
		t.Errorf("Expected error message 'bad request', got '%s'", err.Error())
	}

	cause := errors.New("underlying error")
	err = NewError(ErrNetworkConnection, "network failed", cause)
	expected := "network failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorType
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrServerUnavailable},
		{http.StatusNotFound, ErrInvalidRequest},
		{http.StatusFound, ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		err := NewStatusError(tt.status, "")
		if err.Type != tt.expected {
			t.Errorf("Status %d: expected type %s, got %s", tt.status, tt.expected, err.Type)
		}
		if err.Status != tt.status {
			t.Errorf("Expected status %d, got %d", tt.status, err.Status)
		}
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), ErrTimeout},
		{"timeout text", errors.New("Client.Timeout exceeded while awaiting headers"), ErrTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), ErrNetworkConnection},
		{"dns", errors.New("dial tcp: lookup api.invalid: no such host"), ErrNetworkConnection},
		{"unknown", errors.New("something odd"), ErrNetworkConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.expected {
				t.Errorf("Expected type %s, got %s", tt.expected, got.Type)
			}
		})
	}

	if ClassifyError(nil) != nil {
		t.Error("Expected nil for nil error")
	}

	existing := NewError(ErrRateLimited, "slow down", nil)
	if ClassifyError(fmt.Errorf("wrap: %w", existing)) != existing {
		t.Error("Expected an existing *Error to be returned as is")
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []ErrorType{ErrNetworkConnection, ErrServerUnavailable, ErrTimeout, ErrRateLimited}
	for _, errType := range retryable {
		if !NewError(errType, "x", nil).IsRetryable() {
			t.Errorf("Expected %s to be retryable", errType)
		}
	}

	final := []ErrorType{ErrInvalidRequest, ErrInvalidResponse, ErrUnexpectedResponse}
	for _, errType := range final {
		if NewError(errType, "x", nil).IsRetryable() {
			t.Errorf("Expected %s not to be retryable", errType)
		}
	}
}

func TestUserMessage(t *testing.T) {
	types := []ErrorType{
		ErrNetworkConnection, ErrTimeout, ErrRateLimited, ErrServerUnavailable,
		ErrInvalidRequest, ErrInvalidResponse, ErrUnexpectedResponse,
	}
	for _, errType := range types {
		if NewError(errType, "x", nil).UserMessage() == "" {
			t.Errorf("Expected a user message for %s", errType)
		}
	}
}
