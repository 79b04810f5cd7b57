package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listEnvelope is the paginated shape returned by the backend's list views.
type listEnvelope struct {
	Count    *int            `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
	Data     json.RawMessage `json:"data"`
}

// normalizeList turns either a bare JSON array or a paginated envelope
// ({"results": [...]} or {"data": [...]}) into an ordered slice. An empty
// body or null yields an empty, non-nil slice.
func normalizeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	raw := trimmed
	if trimmed[0] == '{' {
		var env listEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
		}
		switch {
		case len(env.Results) > 0:
			raw = env.Results
		case len(env.Data) > 0:
			raw = env.Data
		default:
			return nil, fmt.Errorf("unexpected list response: object without results")
		}
	}

	items := []T{}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return items, nil
}
