package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/geo"
	"github.com/stockpro/stockpro-cli/internal/inflight"
	"github.com/stockpro/stockpro-cli/internal/resolve"
)

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var (
		apiErr    *api.APIError
		busyErr   *inflight.BusyError
		rangeErr  *geo.OutOfRangeError
		ambiguous *resolve.AmbiguousError
	)

	switch {
	case errors.As(err, &busyErr):
		fmt.Fprintf(&msg, "Another change to %s is already in progress.\n\n", busyErr.Key)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Wait for the other command to finish and retry\n")

	case errors.Is(err, config.ErrNotConfigured), errors.Is(err, api.ErrNoToken):
		msg.WriteString("Not logged in.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: stockpro auth login --email you@example.com\n")
		msg.WriteString("  - Or export STOCKPRO_ACCESS_TOKEN\n")

	case errors.As(err, &rangeErr):
		fmt.Fprintf(&msg, "Check-in refused: %s.\n\n", rangeErr.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Move closer to the store and retry\n")
		msg.WriteString("  - Check the --lat/--lng values\n")

	case errors.As(err, &ambiguous):
		fmt.Fprintf(&msg, "Error: %s\n\n", ambiguous.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Pass the numeric ID instead of the name\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n", apiErr.StatusCode, apiErr.Message())
		if fields := apiErr.FieldErrors(); fields != "" {
			msg.WriteString(fields)
			msg.WriteString("\n")
		}
		msg.WriteString("\n")
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode))

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check that the StockPro backend is running\n")
		msg.WriteString("  - Verify the URL: stockpro auth status\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the --base-url / STOCKPRO_BASE_URL spelling\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch code {
	case 400:
		suggestions.WriteString("  - Check the values passed as flags\n")
		suggestions.WriteString("  - Use --dry-run to see the request that would be sent\n")

	case 401:
		suggestions.WriteString("  - Your access token may be invalid or expired\n")
		suggestions.WriteString("  - Run: stockpro auth login\n")

	case 403:
		suggestions.WriteString("  - You don't have permission for this action\n")
		suggestions.WriteString("  - Most write operations require the admin role\n")

	case 404:
		suggestions.WriteString("  - The record doesn't exist or was deleted\n")
		suggestions.WriteString("  - Check the ID with the matching list command\n")

	case 500, 502, 503, 504:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Wait and retry\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
	}

	return suggestions.String()
}

// errorPayload is the JSON shape written to stderr in JSON mode.
func errorPayload(err error) map[string]any {
	payload := map[string]any{
		"error":     err.Error(),
		"exit_code": ExitCode(err),
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		payload["status"] = apiErr.StatusCode
		payload["message"] = apiErr.Message()
		payload["details"] = apiErr.Payload
	}
	return payload
}
