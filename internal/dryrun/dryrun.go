// Package dryrun previews mutating requests without sending them.
package dryrun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes the request a command would have sent.
type Preview struct {
	Operation   string         `json:"operation"`
	Resource    string         `json:"resource"`
	Method      string         `json:"method,omitempty"`
	Path        string         `json:"path,omitempty"`
	Transport   string         `json:"transport,omitempty"`
	Description string         `json:"description,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// Keys returns the detail keys in sorted order.
func (p *Preview) Keys() []string {
	keys := make([]string, 0, len(p.Details))
	for k := range p.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write outputs the preview to the writer
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would %s %s\n", p.Operation, p.Resource)
	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")

	if p.Method != "" {
		_, _ = fmt.Fprintf(w, "%s %s", p.Method, p.Path)
		if p.Transport != "" {
			_, _ = fmt.Fprintf(w, " (%s)", p.Transport)
		}
		_, _ = fmt.Fprintln(w)
	}
	if p.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n", p.Description)
	}
	_, _ = fmt.Fprintln(w)

	if len(p.Details) > 0 {
		for _, k := range p.Keys() {
			_, _ = fmt.Fprintf(w, "  %s: %v\n", k, p.Details[k])
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(p.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, warning := range p.Warnings {
			_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "───────────────────────────────────────\n")
	_, _ = fmt.Fprintln(w, "No changes made (dry-run mode)")
}

// WriteJSON outputs the preview wrapped as {"dry_run": preview}.
func (p *Preview) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"dry_run": p})
}
