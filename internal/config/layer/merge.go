package layer

import (
	"sort"
	"strings"
)

// Merge returns a new mapping holding override layered on top of defaults.
// When both sides hold a mapping for a key the two are merged recursively;
// otherwise the override value replaces the default value entirely, so a
// sequence in override never gets combined with the default sequence.
// Neither input is modified and the result shares no nodes with them.
func Merge(defaults, override Mapping) Mapping {
	dst := defaults.Clone()
	if dst == nil {
		dst = make(Mapping)
	}
	mergeInto(dst, override, "", nil)
	return dst
}

// mergeInto layers src onto dst in place. dst must be owned by the caller.
// When visit is non-nil it is called for every path written from src.
func mergeInto(dst, src Mapping, prefix string, visit func(path string)) {
	for _, key := range src.Keys() {
		path := joinPath(prefix, key)
		srcVal := src[key]

		srcMap, srcIsMap := srcVal.(Mapping)
		dstMap, dstIsMap := dst[key].(Mapping)
		if srcIsMap && dstIsMap {
			mergeInto(dstMap, srcMap, path, visit)
			continue
		}

		dst[key] = srcVal.clone()
		if visit != nil {
			visit(path)
			if m, ok := srcVal.(Mapping); ok {
				walkPaths(m, path, visit)
			}
		}
	}
}

func walkPaths(m Mapping, prefix string, visit func(path string)) {
	for _, key := range m.Keys() {
		path := joinPath(prefix, key)
		visit(path)
		if nested, ok := m[key].(Mapping); ok {
			walkPaths(nested, path, visit)
		}
	}
}

// Get retrieves a value from a nested mapping using a dot-separated path.
func (m Mapping) Get(path string) (Value, bool) {
	if m == nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	var current Value = m

	for _, part := range parts {
		table, ok := current.(Mapping)
		if !ok {
			return nil, false
		}

		val, exists := table[part]
		if !exists {
			return nil, false
		}

		current = val
	}

	return current, true
}

// Set stores a value in a nested mapping using a dot-separated path.
// Intermediate mappings are created as needed.
func (m Mapping) Set(path string, value Value) {
	if m == nil {
		return
	}

	parts := strings.Split(path, ".")
	current := m

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(Mapping); ok {
			current = next
		} else {
			next := make(Mapping)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}

// Delete removes a value from a nested mapping using a dot-separated path.
// Returns true if the value was found and deleted.
func (m Mapping) Delete(path string) bool {
	if m == nil {
		return false
	}

	parts := strings.Split(path, ".")
	current := m

	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(Mapping)
		if !ok {
			return false
		}
		current = next
	}

	key := parts[len(parts)-1]
	if _, exists := current[key]; exists {
		delete(current, key)
		return true
	}

	return false
}

// Flatten returns every leaf of the mapping keyed by its dot-separated path.
func (m Mapping) Flatten() map[string]Value {
	result := make(map[string]Value)
	flattenRecursive(m, "", result)
	return result
}

func flattenRecursive(data Mapping, prefix string, result map[string]Value) {
	for key, val := range data {
		fullKey := joinPath(prefix, key)
		if nested, ok := val.(Mapping); ok && len(nested) > 0 {
			flattenRecursive(nested, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Diff returns the leaf paths that differ between two mappings, each
// slice sorted.
func Diff(old, new Mapping) (added, modified, removed []string) {
	oldFlat := old.Flatten()
	newFlat := new.Flatten()

	for path, newVal := range newFlat {
		if oldVal, exists := oldFlat[path]; exists {
			if !Equal(oldVal, newVal) {
				modified = append(modified, path)
			}
		} else {
			added = append(added, path)
		}
	}

	for path := range oldFlat {
		if _, exists := newFlat[path]; !exists {
			removed = append(removed, path)
		}
	}

	sort.Strings(added)
	sort.Strings(modified)
	sort.Strings(removed)
	return added, modified, removed
}
