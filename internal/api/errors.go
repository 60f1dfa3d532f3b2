package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *Error {
	return NewError(ErrNetworkConnection, message, cause)
}

// NewStatusError describes an HTTP response the caller could not use.
func NewStatusError(status int, message string) *Error {
	errType := ErrUnexpectedResponse
	switch {
	case status == http.StatusTooManyRequests:
		errType = ErrRateLimited
	case status >= 500:
		errType = ErrServerUnavailable
	case status >= 400:
		errType = ErrInvalidRequest
	}

	if message == "" {
		message = fmt.Sprintf("unexpected status %d", status)
	}

	return &Error{Type: errType, Message: message, Status: status}
}

func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrTimeout, "request timed out", err)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewError(ErrTimeout, "request timed out", err)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	case strings.Contains(errStr, "too many requests"):
		return NewError(ErrRateLimited, "rate limited", err)
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return NewError(ErrTimeout, "network operation timed out", err)
		}
		return NewNetworkError("unknown network error", err)
	}
}

// IsRetryable reports whether the failure is transient and worth another
// manual attempt. Nothing retries automatically.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrServerUnavailable, ErrTimeout, ErrRateLimited:
		return true
	default:
		return false
	}
}

func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrTimeout:
		return "Request timed out. Please try again."
	case ErrRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case ErrServerUnavailable:
		return "The service is temporarily unavailable."
	case ErrInvalidRequest:
		return "The request was rejected by the server."
	case ErrInvalidResponse:
		return "The server sent a response that could not be read."
	default:
		return "An unexpected error occurred."
	}
}
