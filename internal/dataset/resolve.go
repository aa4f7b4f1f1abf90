package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolvePath turns the configured dataset location into a file path. The
// location may be a plain path or a doublestar pattern such as
// "data/**/*.xlsx"; for patterns the lexically first match wins.
func ResolvePath(pattern string) (string, error) {
	if pattern == "" {
		return "", &DataLoadError{Err: errors.New("no dataset configured")}
	}
	if !hasMeta(pattern) {
		return pattern, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", &DataLoadError{Path: pattern, Err: fmt.Errorf("glob: %w", err)}
	}
	if len(matches) == 0 {
		return "", &DataLoadError{Path: pattern, Err: errors.New("pattern matched no files")}
	}
	sort.Strings(matches)
	return matches[0], nil
}

func hasMeta(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
