// Package schema describes the shape of the toolkit configuration and
// validates merged documents against it.
//
// Every property declared on an object is required. Objects reject keys
// they do not declare unless they carry an AdditionalProperties schema,
// which is how map-of sections such as the GitHub source table are
// expressed.
package schema

import (
	"sort"
	"strings"
)

// Schema describes one node of the configuration tree.
type Schema struct {
	// Title is a short name for documentation output.
	Title string

	// Description provides documentation.
	Description string

	// Type is one of the TypeName constants.
	Type string

	// Properties defines object properties (for TypeNameObject).
	Properties map[string]*Schema

	// AdditionalProperties is the schema every undeclared key must match.
	// When nil, undeclared keys are rejected.
	AdditionalProperties *Schema

	// Required lists required property names.
	Required []string

	// Items defines the schema for array elements.
	Items *Schema

	// Enum lists allowed values.
	Enum []any

	// Minimum for numeric types.
	Minimum *float64

	// Maximum for numeric types.
	Maximum *float64

	// MinLength for strings.
	MinLength *int

	// Format is a semantic format hint (FormatPath, FormatColor, FormatURI).
	Format string
}

// GetProperty returns the schema for a nested property path.
// Path is dot-separated (e.g., "pycharm.paths.venv"). Segments not
// declared on an object resolve through its AdditionalProperties.
func (s *Schema) GetProperty(path string) *Schema {
	if s == nil || path == "" {
		return s
	}

	current := s
	for _, part := range strings.Split(path, ".") {
		if prop, ok := current.Properties[part]; ok {
			current = prop
			continue
		}
		if current.AdditionalProperties == nil {
			return nil
		}
		current = current.AdditionalProperties
	}

	return current
}

// HasProperty checks if a property exists at the given path.
func (s *Schema) HasProperty(path string) bool {
	return s.GetProperty(path) != nil
}

// IsRequired checks if a property is required.
func (s *Schema) IsRequired(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// PathFields returns the sorted dotted paths of every declared property
// with FormatPath. Properties reached only through AdditionalProperties
// are not included.
func (s *Schema) PathFields() []string {
	var fields []string
	s.walk("", func(path string, prop *Schema) {
		if prop.Format == FormatPath {
			fields = append(fields, path)
		}
	})
	sort.Strings(fields)
	return fields
}

// Leaves returns the sorted dotted paths of every declared property that
// is not an object.
func (s *Schema) Leaves() []string {
	var leaves []string
	s.walk("", func(path string, prop *Schema) {
		if prop.Type != TypeNameObject {
			leaves = append(leaves, path)
		}
	})
	sort.Strings(leaves)
	return leaves
}

func (s *Schema) walk(prefix string, fn func(path string, prop *Schema)) {
	if s == nil {
		return
	}
	for name, prop := range s.Properties {
		path := joinPath(prefix, name)
		fn(path, prop)
		prop.walk(path, fn)
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
