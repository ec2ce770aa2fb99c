// Package project provides the upward directory walk used to find a project root.
package project

import (
	"path/filepath"
	"strings"
)

// ParentDir returns the parent directory of path. The boolean is false when
// no further ascent is possible: the parent is "." (a relative path has run
// out of components) or the parent is the path itself (filesystem root).
func ParentDir(path string) (string, bool) {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" {
		trimmed = path
	}

	parent := filepath.Dir(trimmed)
	if parent == "." || parent == path || parent == trimmed {
		return "", false
	}

	return parent, true
}

// Walk visits start and then each of its ancestors until visit returns true
// or the filesystem root is passed. Every directory is passed through
// normalize before it is visited; the normalized value is also where the
// next ascent starts from. It returns the directory accepted by visit.
func Walk(start string, normalize func(string) string, visit func(dir string) bool) (string, bool) {
	if normalize == nil {
		normalize = func(dir string) string { return dir }
	}

	dir := normalize(start)
	if visit(dir) {
		return dir, true
	}

	// Walk up the directory tree
	for {
		parent, ok := ParentDir(dir)
		if !ok {
			// Reached root
			return "", false
		}

		dir = normalize(parent)
		if visit(dir) {
			return dir, true
		}
	}
}
