package layer

// Standard priority levels for configuration layers.
// Higher values override lower values during merging.
const (
	// PriorityDefaults is the lowest priority, for the packaged defaults.
	PriorityDefaults = 0

	// PriorityOverride is for the project override file.
	PriorityOverride = 200
)

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceOverride:
		return PriorityOverride
	default:
		return PriorityDefaults
	}
}

// StandardLayerNames defines standard names for configuration layers.
var StandardLayerNames = map[Source]string{
	SourceDefaults: "defaults",
	SourceOverride: "override",
}

// StandardLayerName returns the standard name for a source.
func StandardLayerName(source Source) string {
	if name, ok := StandardLayerNames[source]; ok {
		return name
	}
	return "unknown"
}
