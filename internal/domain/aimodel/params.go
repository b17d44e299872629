package aimodel

import (
	"encoding/json"
	"maps"
	"math"
)

// Params holds default or merged call options keyed by their document name.
type Params map[string]any

// Clone returns a shallow copy safe to mutate.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Int returns the first key present with a numeric value.
func (p Params) Int(keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := p[key]; ok {
			if n, ok := toFloat(v); ok {
				return int(math.Round(n)), true
			}
		}
	}
	return 0, false
}

// Float returns the first key present with a numeric value.
func (p Params) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := p[key]; ok {
			if n, ok := toFloat(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
