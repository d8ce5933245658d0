package layer

import (
	"sort"
	"strings"
)

// Manager collects configuration layers and merges them by priority.
// A Manager is built once per load and is not safe for concurrent use.
type Manager struct {
	layers []*Layer // Sorted by priority (ascending)
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{layers: make([]*Layer, 0, 2)}
}

// AddLayer adds a layer. Layers are kept sorted by priority; layers with
// equal priority keep insertion order.
func (m *Manager) AddLayer(l *Layer) {
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// Layer returns the first layer with the given source.
func (m *Manager) Layer(source Source) *Layer {
	for _, l := range m.layers {
		if l.Source == source {
			return l
		}
	}
	return nil
}

// Layers returns a copy of the layer list sorted by priority.
func (m *Manager) Layers() []*Layer {
	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// Merge combines all layers, lowest priority first, and records which
// layer supplied every path of the result.
func (m *Manager) Merge() *Merged {
	merged := &Merged{
		Data:    make(Mapping),
		origins: make(map[string]*Layer),
	}

	for _, l := range m.layers {
		l := l
		mergeInto(merged.Data, l.Data, "", func(path string) {
			merged.forget(path)
			merged.origins[path] = l
		})
	}

	return merged
}

// Merged is the result of merging a Manager's layers.
type Merged struct {
	// Data is the merged document. It is owned by the caller.
	Data Mapping

	origins map[string]*Layer
}

// forget drops provenance recorded below path, used when a value is
// replaced wholesale.
func (m *Merged) forget(path string) {
	prefix := path + "."
	for p := range m.origins {
		if strings.HasPrefix(p, prefix) {
			delete(m.origins, p)
		}
	}
}

// Origin returns the layer that supplied path, or its closest ancestor
// when path itself was never written. Returns nil if unknown.
func (m *Merged) Origin(path string) *Layer {
	for path != "" {
		if l, ok := m.origins[path]; ok {
			return l
		}
		i := strings.LastIndexAny(path, ".[")
		if i < 0 {
			break
		}
		path = path[:i]
	}
	return nil
}

// OriginName describes the layer that supplied path for error messages,
// for example "override (/srv/course/toolkit_config.toml)".
func (m *Merged) OriginName(path string) string {
	l := m.Origin(path)
	if l == nil {
		return ""
	}
	if l.Path == "" {
		return l.Source.String()
	}
	return l.Source.String() + " (" + l.Path + ")"
}
