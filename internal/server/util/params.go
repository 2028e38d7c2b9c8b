// Package util holds request-level helpers shared by the route handlers.
package util

import "strconv"

// BoundedIntParam parses an integer query parameter, falling back to def
// when the value is missing or malformed and clamping into [min, max].
func BoundedIntParam(raw string, def, min, max int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
