package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"rhystmorgan/onboard/internal/validation"
)

const UnknownErrorMessage = "Unknown error while submitting the form."

// classifyResponse maps a service reply onto a Result:
//
//	2xx                          success
//	400 object without "error"   per-field errors
//	object with "error"          global error
//	anything else                generic error
func classifyResponse(status int, body []byte) Result {
	var decoded any
	decodeErr := json.Unmarshal(body, &decoded)

	if status == http.StatusOK || status == http.StatusCreated {
		result := Result{Success: true}
		if decodeErr == nil {
			result.Data = json.RawMessage(body)
		}
		return result
	}

	if decodeErr != nil {
		return Result{Error: UnknownErrorMessage}
	}

	obj, isObject := decoded.(map[string]any)
	if !isObject {
		return Result{Error: UnknownErrorMessage}
	}

	if raw, hasError := obj["error"]; hasError {
		if msg := errorText(raw); msg != "" {
			return Result{Error: msg}
		}
		return Result{Error: UnknownErrorMessage}
	}

	if status == http.StatusBadRequest {
		errs := make(validation.ErrorMap, len(obj))
		for key, value := range obj {
			errs[key] = errorText(value)
		}
		return Result{Errors: errs}
	}

	return Result{Error: UnknownErrorMessage}
}

// errorText renders a server error value as one line. Lists are joined
// with ", ".
func errorText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := errorText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

func errorKeys(errs validation.ErrorMap) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
