package mapper

import "strconv"

// isIndex reports whether a JSON-Pointer segment is an array index.
// Negative indices are not valid pointer segments.
func isIndex(segment string) bool {
	if segment == "" || segment[0] == '-' {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseIndex is only called on segments isIndex accepted
func parseIndex(segment string) int {
	n, err := strconv.Atoi(segment)
	if err != nil {
		return 0
	}
	return n
}
