// Package filter applies jq expressions (via gojq) to command output.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// NormalizeExpression fixes shell-escaped operators in jq expressions.
// Zsh escapes ! to \! even in single quotes, breaking operators like !=.
func NormalizeExpression(expr string) string {
	return strings.ReplaceAll(expr, `\!`, `!`)
}

// Apply applies a jq expression to data. A single result is returned as is;
// several results come back as a slice.
func Apply(data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}

	expression = NormalizeExpression(expression)
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	results, err := runQuery(query, data)
	if err != nil {
		if items, ok := resultsFallbackData(data, expression, err); ok {
			if fallbackResults, fallbackErr := runQuery(query, items); fallbackErr == nil {
				results = fallbackResults
				err = nil
			}
		}
	}
	if err != nil {
		return nil, err
	}

	return collapseQueryResults(results), nil
}

func runQuery(query *gojq.Query, data any) ([]any, error) {
	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func collapseQueryResults(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

// resultsFallbackData lets ".[] | ..." queries run against a paginated
// {"results": [...]} object by retrying on the results array.
func resultsFallbackData(data any, expression string, runErr error) (any, bool) {
	if runErr == nil || !looksLikeRootArrayQuery(expression) {
		return nil, false
	}

	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"results", "data"} {
		if items, ok := m[key].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

func looksLikeRootArrayQuery(expression string) bool {
	expr := strings.TrimSpace(expression)
	return strings.HasPrefix(expr, ".[") || strings.HasPrefix(expr, "[.[]") || strings.HasPrefix(expr, "(.[]")
}

// ToGeneric converts any JSON-marshalable value into the plain
// map/slice/float64 shape gojq operates on.
func ToGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value for filtering: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return out, nil
}

// ApplyValue converts v with ToGeneric and applies expression.
func ApplyValue(v any, expression string) (any, error) {
	if expression == "" {
		return v, nil
	}
	data, err := ToGeneric(v)
	if err != nil {
		return nil, err
	}
	return Apply(data, expression)
}

// ApplyToJSON applies filter to JSON bytes and returns filtered JSON bytes (pretty-printed).
func ApplyToJSON(jsonData []byte, expression string) ([]byte, error) {
	if expression == "" {
		return jsonData, nil
	}

	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := Apply(data, expression)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(result, "", "  ")
}
