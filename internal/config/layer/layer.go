// Package layer provides the configuration value tree and layer merging
// for the toolkit configuration.
//
// Documents are held as a Mapping of Value nodes (Scalar, Mapping or
// Sequence). Layers are merged in priority order; higher priority layers
// override values from lower priority layers.
package layer

// Layer represents a single configuration source.
type Layer struct {
	// Name identifies the layer (e.g., "defaults", "override").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path, or the embedded name for packaged defaults.
	Path string

	// Data holds the configuration values.
	Data Mapping
}

// NewLayer creates a layer with the standard name and priority for source.
func NewLayer(source Source, path string, data Mapping) *Layer {
	if data == nil {
		data = make(Mapping)
	}
	return &Layer{
		Name:     StandardLayerName(source),
		Priority: DefaultPriority(source),
		Source:   source,
		Path:     path,
		Data:     data,
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Path:     l.Path,
		Data:     l.Data.Clone(),
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceUnknown is reported when provenance cannot be determined.
	SourceUnknown Source = iota
	// SourceDefaults is the packaged defaults document.
	SourceDefaults
	// SourceOverride is the project-level override document.
	SourceOverride
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}
