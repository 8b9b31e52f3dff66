package search

import (
	"math"
	"strconv"
	"strings"
	"time"

	"flights/entity"
)

// The aggregator mixes supplier families, so the same record arrives in
// several shapes. Extraction is an ordered list of strategies; the first one
// that yields a value wins.

// firstLeg resolves the first flight leg of a raw offer, trying in order:
// segments[0][0] (array of arrays), segments[0] (flat array), segments itself
// (bare object).
func firstLeg(segments any) (map[string]any, bool) {
	if outer, ok := segments.([]any); ok {
		if len(outer) == 0 {
			return nil, false
		}
		if inner, ok := outer[0].([]any); ok {
			if len(inner) == 0 {
				return nil, false
			}
			leg, ok := inner[0].(map[string]any)
			return leg, ok
		}
		leg, ok := outer[0].(map[string]any)
		return leg, ok
	}
	leg, ok := segments.(map[string]any)
	return leg, ok
}

// legCount returns how many legs the first journey has, and whether a leg
// array was present at all.
func legCount(segments any) (int, bool) {
	outer, ok := segments.([]any)
	if !ok || len(outer) == 0 {
		return 0, false
	}
	if inner, ok := outer[0].([]any); ok {
		return len(inner), true
	}
	return len(outer), true
}

// stringAt walks nested maps along path and returns the string leaf, if any.
func stringAt(m map[string]any, path ...string) (string, bool) {
	current := any(m)
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[key]
		if !ok {
			return "", false
		}
	}
	s, ok := current.(string)
	return s, ok && s != ""
}

// firstString returns the first non-empty string among the given key paths.
func firstString(m map[string]any, paths ...[]string) string {
	for _, path := range paths {
		if s, ok := stringAt(m, path...); ok {
			return s
		}
	}
	return ""
}

// toNumber coerces a raw value to a finite float64. Non-finite results and
// unparsable inputs map to 0, never NaN.
func toNumber(v any) float64 {
	var n float64
	switch value := v.(type) {
	case float64:
		n = value
	case int:
		n = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseClock parses a supplier timestamp defensively. Unparsable input yields
// the sentinel display string and a zero time.
func parseClock(v any) (display string, at time.Time) {
	s, ok := v.(string)
	if !ok || s == "" {
		return entity.UnparsableTime, time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), t
		}
	}
	return entity.UnparsableTime, time.Time{}
}
