// Package untyped normalizes JSON-shaped input values before construction.
//
// Documents arrive from three places: Go literals written in tests or callers,
// goccy/go-json decoding (json.Number for numbers), and yaml.v3 decoding
// (possibly map[any]any for mappings). Normalization folds all of them into
// one canonical shape: map[string]any, []any, int64, float64, string, bool,
// nil. Construction and literal registries compare against that shape only.
package untyped

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Canon canonicalizes a single scalar. The second result reports whether v is
// a scalar at all; containers and unknown types return false.
func Canon(v any) (any, bool) {
	switch n := v.(type) {
	case nil:
		return nil, true
	case bool:
		return n, true
	case string:
		return n, true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return float64(n), true
		}
		return int64(n), true
	case float32:
		return canonFloat(float64(n)), true
	case float64:
		return canonFloat(n), true
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return n.String(), true
	}
	return nil, false
}

// canonFloat folds integral floats back into int64 so that documents decoded
// in float mode compare equal to documents decoded with number preservation.
func canonFloat(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// Normalize walks a decoded document, canonicalizing every scalar and
// coercing mapping keys to strings.
func Normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = Normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = Normalize(e)
		}
		return out
	}
	if c, ok := Canon(v); ok {
		return c
	}
	return v
}
