// Package matching provides the path predicates used by the built-in actions.
//
// Matching is deliberately literal:
//
//   - MatchExact: the request path equals the declared path byte for byte,
//     with no trailing-slash normalization and no percent-decoding
//   - MatchSegment: the request path starts with a directory-like prefix and
//     the rest of it is a single segment containing no further '/'
//
// Both predicates are pure and safe for concurrent use.
package matching
