package action

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseTarget splits a request target into its path and query parameters.
//
// The path is returned as sent, without percent-decoding. The query string is
// decoded into url.Values, which keeps every occurrence of a repeated key in
// order: "?b=6&b=7" yields b = ["6", "7"]. Keys without a value are dropped.
// A malformed query string yields a *ValidationError.
func ParseTarget(target string) (string, url.Values, error) {
	target, _, _ = strings.Cut(target, "#")

	var path, rawQuery string
	if strings.HasPrefix(target, "/") || target == "" {
		path, rawQuery, _ = strings.Cut(target, "?")
	} else {
		u, err := url.Parse(target)
		if err != nil {
			return "", nil, NewValidationError(fmt.Errorf("URL parse exception: %w", err))
		}
		path, rawQuery = u.EscapedPath(), u.RawQuery
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, NewValidationError(fmt.Errorf("URL parse exception: %w", err))
	}
	for key, values := range params {
		kept := values[:0]
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			delete(params, key)
			continue
		}
		params[key] = kept
	}
	return path, params, nil
}
