package matching

import "strings"

// MatchExact reports whether path equals pattern exactly.
func MatchExact(pattern, path string) bool {
	return pattern == path
}

// NormalizePrefix appends a trailing '/' to prefix if it is missing.
func NormalizePrefix(prefix string) string {
	if !strings.HasSuffix(prefix, "/") {
		return prefix + "/"
	}
	return prefix
}

// MatchSegment reports whether path lies directly under prefix and returns the
// remaining segment. The prefix must already be normalized. A remainder that
// contains '/' does not match, so "/static/a/b.txt" never matches "/static/".
//
// Examples:
//   - prefix "/static/" with path "/static/app.js" returns ("app.js", true)
//   - prefix "/static/" with path "/static/" returns ("", true)
//   - prefix "/static/" with path "/static/js/app.js" returns ("", false)
func MatchSegment(prefix, path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
