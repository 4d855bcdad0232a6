package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadGlob loads every seed file matched by the given paths or glob
// patterns. Plain paths must exist; patterns must match at least one file.
// Within a pattern, files load in lexical order.
func LoadGlob(patterns ...string) ([]*Seed, error) {
	var seeds []*Seed
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		files := []string{pattern}
		if isGlobPattern(pattern) {
			matches, err := expandGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no files match %s", ErrFileNotFound, pattern)
			}
			sort.Strings(matches)
			files = matches
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			seed, err := LoadFromFile(file)
			if err != nil {
				return nil, err
			}
			seeds = append(seeds, seed)
		}
	}
	return seeds, nil
}

func isGlobPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func expandGlob(pattern string) ([]string, error) {
	// ** needs doublestar; filepath.Glob treats it as a single *.
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}
