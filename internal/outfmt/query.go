package outfmt

import (
	"context"
	"io"

	"github.com/stockpro/stockpro-cli/internal/filter"
)

type queryKey struct{}

// WithQuery adds a JQ query to the context
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// GetQuery retrieves the JQ query from context
func GetQuery(ctx context.Context) string {
	if q, ok := ctx.Value(queryKey{}).(string); ok {
		return q
	}
	return ""
}

// ApplyQuery applies a JQ query to structured data and returns the filtered value.
func ApplyQuery(v any, query string) (any, error) {
	v = normalizeJSONOutput(v)
	if query == "" {
		return v, nil
	}
	return filter.ApplyValue(v, query)
}

// WriteJSONFiltered writes JSON with optional JQ filtering.
// Uses pretty-printed output by default; pass compact=true for single-line output.
func WriteJSONFiltered(w io.Writer, v any, query string, compact bool) error {
	result, err := ApplyQuery(v, query)
	if err != nil {
		return err
	}
	return WriteJSONMaybeCompact(w, result, compact)
}
