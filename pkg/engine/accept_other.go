//go:build !unix && !windows

package engine

func isResourceExhausted(error) bool {
	return false
}
