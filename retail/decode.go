package retail

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// decodeNumbers decodes a JSON object of name -> number. A null payload, or
// a null entry, is malformed rather than zero.
func decodeNumbers(op, what, payload string) (map[string]float64, error) {
	var raw map[string]*float64
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, malformed(op, "%s: %v", what, err)
	}
	if raw == nil {
		return nil, malformed(op, "%s must be a JSON object", what)
	}
	out := make(map[string]float64, len(raw))
	for _, name := range sortedKeys(raw) {
		v := raw[name]
		if v == nil {
			return nil, malformed(op, "%s: %s is not a number", what, name)
		}
		out[name] = *v
	}
	return out, nil
}

// decodeNestedNumbers decodes product -> name -> number with the same null rules.
func decodeNestedNumbers(op, what, payload string) (map[string]map[string]float64, error) {
	var raw map[string]map[string]*float64
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, malformed(op, "%s: %v", what, err)
	}
	if raw == nil {
		return nil, malformed(op, "%s must be a JSON object", what)
	}
	out := make(map[string]map[string]float64, len(raw))
	for _, product := range sortedKeys(raw) {
		inner := raw[product]
		if inner == nil {
			return nil, malformed(op, "%s: %s must be a JSON object", what, product)
		}
		prices := make(map[string]float64, len(inner))
		for _, name := range sortedKeys(inner) {
			v := inner[name]
			if v == nil {
				return nil, malformed(op, "%s: %s/%s is not a number", what, product, name)
			}
			prices[name] = *v
		}
		out[product] = prices
	}
	return out, nil
}

// sortedKeys makes error reporting independent of map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func outOfRange(op, subject string) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrOutOfRange, subject)}
}
