// Package parse provides string parsing utilities for CLI flags.
package parse

import (
	"fmt"
	"strings"
)

// KeyValue splits s at the first of the given delimiters, or at ':' when none
// are given. ok is false when no delimiter occurs in s.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}
	i := strings.IndexFunc(s, func(r rune) bool {
		for _, d := range delimiters {
			if r == d {
				return true
			}
		}
		return false
	})
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// Mapping parses a "left=right" flag value. Both sides are trimmed and must
// be non-empty.
func Mapping(s string) (left, right string, err error) {
	left, right, ok := KeyValue(s, '=')
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return "", "", fmt.Errorf("invalid value %q, expected left=right", s)
	}
	return left, right, nil
}
