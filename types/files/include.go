package files

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CheckFileIncluded reports whether filePath matches any of the include
// patterns. Without patterns every file is included.
func CheckFileIncluded(filePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	normalized := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(filePath)), "./")
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		// Absolute paths match on their trailing segments, so repository
		// relative patterns still apply.
		if matchesSuffix(pattern, normalized) {
			return true
		}
	}
	return false
}

func matchesSuffix(pattern, filePath string) bool {
	if !strings.HasPrefix(filePath, "/") || strings.HasPrefix(pattern, "/") {
		return false
	}

	segments := strings.Split(strings.TrimPrefix(filePath, "/"), "/")
	for i := 1; i < len(segments); i++ {
		candidate := strings.Join(segments[i:], "/")
		if matched, err := doublestar.Match(pattern, candidate); err == nil && matched {
			return true
		}
	}
	return false
}
