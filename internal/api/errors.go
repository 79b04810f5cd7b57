package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError represents a non-2xx response from the backend.
//
// Payload is the decoded JSON error body. When the body is empty or not JSON
// the payload is an empty object, so the status code is never masked by a
// decoding failure.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Payload    map[string]any
	Body       string
}

func newAPIError(method, url string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Payload:    parseErrorPayload(body),
		Body:       string(body),
	}
}

// parseErrorPayload decodes a DRF-style error body. Objects are kept as is,
// a bare list becomes {"non_field_errors": [...]} and a bare string becomes
// {"detail": "..."}. Anything else yields an empty object.
func parseErrorPayload(body []byte) map[string]any {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return map[string]any{}
	}
	switch v := raw.(type) {
	case map[string]any:
		return v
	case []any:
		return map[string]any{"non_field_errors": v}
	case string:
		return map[string]any{"detail": v}
	default:
		return map[string]any{}
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.PayloadJSON())
}

// PayloadJSON returns the serialized error payload ("{}" when empty).
func (e *APIError) PayloadJSON() string {
	if len(e.Payload) == 0 {
		return "{}"
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Message returns the most specific human message in the payload: the
// "error", "message" or "detail" field, falling back to the HTTP status.
func (e *APIError) Message() string {
	for _, key := range []string{"error", "message", "detail"} {
		if s, ok := e.Payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// FieldErrors formats per-field validation errors, one "  field: message" line
// each, sorted for stable output. Handles both {"f": "msg"} and {"f": ["msg"]}.
func (e *APIError) FieldErrors() string {
	var lines []string
	for field, value := range e.Payload {
		switch field {
		case "error", "message", "detail":
			continue
		}
		switch v := value.(type) {
		case string:
			lines = append(lines, fmt.Sprintf("  %s: %s", field, v))
		case []any:
			for _, msg := range v {
				if s, ok := msg.(string); ok {
					lines = append(lines, fmt.Sprintf("  %s: %s", field, s))
				}
			}
		}
	}
	if len(lines) == 0 {
		return ""
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFoundError reports whether err is a 404 from the backend.
func IsNotFoundError(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsAuthError reports whether err is a 401 from the backend.
func IsAuthError(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbiddenError reports whether err is a 403 from the backend.
func IsForbiddenError(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
