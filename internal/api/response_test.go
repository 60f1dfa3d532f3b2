package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"rhystmorgan/onboard/internal/validation"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected Result
	}{
		{
			name:     "created",
			status:   http.StatusCreated,
			body:     `{"id": 7}`,
			expected: Result{Success: true, Data: []byte(`{"id": 7}`)},
		},
		{
			name:     "ok without body",
			status:   http.StatusOK,
			body:     ``,
			expected: Result{Success: true},
		},
		{
			name:     "ok with error key is still success",
			status:   http.StatusOK,
			body:     `{"error": "ignored"}`,
			expected: Result{Success: true, Data: []byte(`{"error": "ignored"}`)},
		},
		{
			name:   "field errors joined",
			status: http.StatusBadRequest,
			body:   `{"name": ["too short", "required"], "cpf": "invalid"}`,
			expected: Result{Errors: validation.ErrorMap{
				"name": "too short, required",
				"cpf":  "invalid",
			}},
		},
		{
			name:     "single field error list",
			status:   http.StatusBadRequest,
			body:     `{"name": ["too short"]}`,
			expected: Result{Errors: validation.ErrorMap{"name": "too short"}},
		},
		{
			name:     "400 with error key is global",
			status:   http.StatusBadRequest,
			body:     `{"error": "duplicate partner", "cpf": ["taken"]}`,
			expected: Result{Error: "duplicate partner"},
		},
		{
			name:     "500 with error key",
			status:   http.StatusInternalServerError,
			body:     `{"error": "database unavailable"}`,
			expected: Result{Error: "database unavailable"},
		},
		{
			name:     "500 without error key",
			status:   http.StatusInternalServerError,
			body:     `{"detail": "boom"}`,
			expected: Result{Error: UnknownErrorMessage},
		},
		{
			name:     "non json",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			expected: Result{Error: UnknownErrorMessage},
		},
		{
			name:     "400 array body",
			status:   http.StatusBadRequest,
			body:     `["nope"]`,
			expected: Result{Error: UnknownErrorMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyResponse(tt.status, []byte(tt.body))
			assert.Equal(t, tt.expected.Success, got.Success)
			assert.Equal(t, tt.expected.Errors, got.Errors)
			assert.Equal(t, tt.expected.Error, got.Error)
			if tt.expected.Data != nil {
				assert.JSONEq(t, string(tt.expected.Data), string(got.Data))
			}
		})
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "a, b", errorText([]any{"a", "b"}))
	assert.Equal(t, "3", errorText(float64(3)))
	assert.Equal(t, `{"street":"required"}`, errorText(map[string]any{"street": "required"}))
	assert.Equal(t, "", errorText(nil))
}
