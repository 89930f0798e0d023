// Package stacktrace condenses panic stacks down to this module's frames.
package stacktrace

import "strings"

// InternalPaths extracts the internal/ source locations from a raw stack
// trace, trimmed to "internal/...go:line". Frames outside the module are
// skipped so panic logs stay readable.
func InternalPaths(stack []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}
		start := strings.Index(line, "/internal/")
		if start == -1 || start > idx {
			continue
		}
		end := idx + len(".go:")
		for end < len(line) && line[end] >= '0' && line[end] <= '9' {
			end++
		}
		paths = append(paths, line[start+1:end])
	}
	return paths
}
