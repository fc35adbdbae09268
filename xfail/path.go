package xfail

import "strings"

// SplitTestPath resolves a dot-separated qualified test path into the name
// components used for in-file lookup. The first two components are a fixed
// module-qualification prefix (top-level package and module) and are
// dropped; a path with fewer than three components resolves to nothing.
func SplitTestPath(path string) []string {
	parts := strings.Split(path, ".")
	if len(parts) <= 2 {
		return nil
	}
	return parts[2:]
}
