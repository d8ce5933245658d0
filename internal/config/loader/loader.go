// Package loader reads configuration documents into untyped maps.
//
// The packaged defaults are TOML. Override documents may be TOML, YAML or
// JSON, chosen by file extension. A missing override file is not an
// error: it loads as an empty document.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a document syntax.
type Format uint8

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML covers .yaml and .yml files.
	FormatYAML
	// FormatJSON is parsed with the YAML decoder, JSON being a subset.
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "toml"
	}
}

// FormatForPath picks a format from the file extension. Unknown
// extensions are treated as TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Loader reads configuration documents.
type Loader struct {
	fs FileSystem
}

// New creates a loader backed by the OS file system.
func New() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewWithFS creates a loader with a custom file system.
func NewWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// LoadFile reads and parses the document at path. A file that does not
// exist yields an empty, non-nil map.
func (l *Loader) LoadFile(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.LoadBytes(path, data, FormatForPath(path))
}

// LoadReader reads a whole document from r. name is used in errors.
func (l *Loader) LoadReader(name string, r io.Reader, format Format) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", name, err)
	}

	return l.LoadBytes(name, data, format)
}

// LoadBytes parses an in-memory document such as the embedded defaults.
func (l *Loader) LoadBytes(name string, data []byte, format Format) (map[string]any, error) {
	var (
		config map[string]any
		err    error
	)
	switch format {
	case FormatYAML, FormatJSON:
		config, err = parseYAML(name, data)
	default:
		config, err = parseTOML(name, data)
	}
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
