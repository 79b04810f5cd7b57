package outfmt

import (
	"encoding/json"
	"reflect"
)

// normalizeJSONOutput turns nil slices into empty ones so list output is
// always an array, never null.
func normalizeJSONOutput(v any) any {
	if v == nil {
		return v
	}
	switch v.(type) {
	case []byte, json.RawMessage:
		return v
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []any{}
	}
	return v
}
