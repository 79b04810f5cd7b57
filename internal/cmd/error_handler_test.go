package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/geo"
	"github.com/stockpro/stockpro-cli/internal/inflight"
	"github.com/stockpro/stockpro-cli/internal/resolve"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "nil",
			err:      nil,
			contains: nil,
		},
		{
			name:     "not logged in",
			err:      fmt.Errorf("load: %w", config.ErrNotConfigured),
			contains: []string{"Not logged in.", "stockpro auth login"},
		},
		{
			name:     "busy",
			err:      &inflight.BusyError{Key: "stock/4"},
			contains: []string{"Another change to stock/4 is already in progress."},
		},
		{
			name:     "out of range",
			err:      &geo.OutOfRangeError{Distance: 340, Radius: 100},
			contains: []string{"Check-in refused: position is 340 m from the store (max 100 m).", "Move closer"},
		},
		{
			name:     "ambiguous",
			err:      &resolve.AmbiguousError{Query: "riz", Matches: []resolve.Match{{ID: 1, Name: "Riz 5kg"}, {ID: 2, Name: "Riz 25kg"}}},
			contains: []string{`ambiguous match for "riz"`, "1: Riz 5kg", "Pass the numeric ID"},
		},
		{
			name: "validation error",
			err: &api.APIError{StatusCode: 400, Payload: map[string]any{
				"reference": []any{"product with this reference already exists."},
			}},
			contains: []string{"API error (HTTP 400): HTTP error: 400", "  reference: product with this reference already exists.", "--dry-run"},
		},
		{
			name:     "forbidden",
			err:      &api.APIError{StatusCode: 403, Payload: map[string]any{"detail": "Vous n'avez pas la permission."}},
			contains: []string{"API error (HTTP 403): Vous n'avez pas la permission.", "admin role"},
		},
		{
			name:     "server",
			err:      &api.APIError{StatusCode: 500},
			contains: []string{"Server error"},
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"),
			contains: []string{"Connection refused.", "backend is running"},
		},
		{
			name:     "default",
			err:      errors.New("something odd"),
			contains: []string{"Error: something odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleError(tt.err)
			if tt.err == nil {
				assert.Empty(t, got)
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestErrorPayload(t *testing.T) {
	err := &api.APIError{StatusCode: 404, Payload: map[string]any{"detail": "Not found."}}
	payload := errorPayload(err)

	assert.Equal(t, exitNotFound, payload["exit_code"])
	assert.Equal(t, 404, payload["status"])
	assert.Equal(t, "Not found.", payload["message"])
	assert.True(t, strings.HasPrefix(payload["error"].(string), "API error (status 404)"))
}
