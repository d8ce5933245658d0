package config

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/config/loader"
)

// DefaultsName identifies the packaged defaults in errors and provenance.
const DefaultsName = "defaults.toml"

// OverrideFileName is the override document looked up in the project root.
const OverrideFileName = "toolkit_config.toml"

//go:embed defaults.toml
var defaultsTOML []byte

// DefaultsTOML returns a copy of the packaged defaults document.
func DefaultsTOML() []byte {
	out := make([]byte, len(defaultsTOML))
	copy(out, defaultsTOML)
	return out
}

var parsedDefaults = sync.OnceValues(func() (layer.Mapping, error) {
	return parseDefaults(defaultsTOML)
})

// Defaults returns the packaged defaults as an unvalidated mapping. The
// result is a fresh copy on every call.
func Defaults() (layer.Mapping, error) {
	m, err := parsedDefaults()
	if err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

func parseDefaults(data []byte) (layer.Mapping, error) {
	raw, err := loader.New().LoadBytes(DefaultsName, data, loader.FormatTOML)
	if err != nil {
		return nil, err
	}
	m, err := layer.FromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", DefaultsName, err)
	}
	return m, nil
}
