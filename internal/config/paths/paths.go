// Package paths resolves path-bearing configuration fields against the
// project root and discovers that root on disk.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/config/schema"
)

// DefaultMarker is the directory that identifies a course project root.
const DefaultMarker = ".idea"

// DefaultMaxLevels bounds how many parents FindRoot examines.
const DefaultMaxLevels = 8

// Resolve returns a copy of m where every field in fields holding a
// relative path is joined onto root. Absolute paths are kept as they are.
// Every listed field must be present, even when empty; sourceOf, when not
// nil, names the document a missing field was expected in. Values that are
// not strings, and fields below a value that is not a table, are left
// untouched for schema validation to report.
func Resolve(m layer.Mapping, root string, fields []string, sourceOf schema.SourceLookup) (layer.Mapping, error) {
	out := m.Clone()
	if out == nil {
		out = make(layer.Mapping)
	}

	for _, field := range fields {
		if blockedBy(out, field) {
			continue
		}
		val, ok := out.Get(field)
		if !ok {
			missing := &schema.MissingFieldError{Path: field}
			if sourceOf != nil {
				missing.Source = sourceOf(field)
			}
			return nil, &ResolutionError{Path: field, Err: missing}
		}
		scalar, ok := val.(layer.Scalar)
		if !ok {
			continue
		}
		s, ok := scalar.V.(string)
		if !ok {
			continue
		}
		out.Set(field, layer.Scalar{V: Join(root, s)})
	}

	return out, nil
}

// blockedBy reports whether an ancestor of field exists but is not a table.
func blockedBy(m layer.Mapping, field string) bool {
	parts := strings.Split(field, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		val, ok := current[part]
		if !ok {
			return false
		}
		next, ok := val.(layer.Mapping)
		if !ok {
			return true
		}
		current = next
	}
	return false
}

// Join resolves p against root. Relative paths are joined and cleaned;
// absolute paths are returned unchanged.
func Join(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// FindRoot searches start and up to maxLevels of its parents for a
// directory containing marker, returning the first one found. A maxLevels
// of zero examines start only.
func FindRoot(start, marker string, maxLevels int) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	if maxLevels < 0 {
		maxLevels = 0
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", &ProjectNotFoundError{Start: start, Marker: marker, Err: err}
	}

	for level := 0; level <= maxLevels; level++ {
		if hasMarker(current, marker) {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", &ProjectNotFoundError{Start: start, Marker: marker, Levels: level}
		}
		current = parent
	}

	return "", &ProjectNotFoundError{Start: start, Marker: marker, Levels: maxLevels}
}

// hasMarker reports whether dir holds marker. The default marker must be
// a directory; other markers may be any kind of entry.
func hasMarker(dir, marker string) bool {
	info, err := os.Stat(filepath.Join(dir, marker))
	if err != nil {
		return false
	}
	return marker != DefaultMarker || info.IsDir()
}

// CheckRoot verifies that root is an existing directory and returns its
// absolute form.
func CheckRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &ProjectNotFoundError{Start: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ProjectNotFoundError{Start: root, Err: err}
	}
	if !info.IsDir() {
		return "", &ProjectNotFoundError{Start: root, Err: &os.PathError{Op: "stat", Path: abs, Err: errNotDir}}
	}
	return abs, nil
}
