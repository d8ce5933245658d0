package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/tkutils/toolkit/internal/config/loader"
	"github.com/tkutils/toolkit/internal/config/paths"
	"github.com/tkutils/toolkit/internal/logger"
)

// Settings control how Load finds the project and the override document.
// Fields left empty are filled from the environment, then from the
// built-in defaults.
type Settings struct {
	// Root is the project root. When set, discovery is skipped.
	Root string `env:"TK_PROJECT_ROOT"`

	// Start is the directory discovery begins in. Defaults to the
	// working directory.
	Start string

	// Marker is the entry identifying the project root.
	Marker string `env:"TK_PROJECT_MARKER"`

	// MaxLevels bounds how many parents discovery examines. Nil means
	// unset; zero examines the start directory only.
	MaxLevels *int `env:"TK_MAX_LEVELS"`

	// ConfigFile is the override document. Relative paths are resolved
	// against the project root.
	ConfigFile string `env:"TK_CONFIG_FILE"`
}

// Option configures Load.
type Option func(*options)

type options struct {
	settings Settings
	fs       loader.FileSystem
	log      *logger.Logger
	noEnv    bool
}

// WithRoot sets the project root, skipping discovery.
func WithRoot(root string) Option {
	return func(o *options) {
		o.settings.Root = root
	}
}

// WithStart sets the directory root discovery begins in.
func WithStart(dir string) Option {
	return func(o *options) {
		o.settings.Start = dir
	}
}

// WithMarker sets the name of the project marker entry.
func WithMarker(marker string) Option {
	return func(o *options) {
		o.settings.Marker = marker
	}
}

// WithMaxLevels bounds the number of parent directories examined. Zero
// limits discovery to the start directory.
func WithMaxLevels(n int) Option {
	return func(o *options) {
		o.settings.MaxLevels = &n
	}
}

// WithConfigFile sets the override document path.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.settings.ConfigFile = path
	}
}

// WithFileSystem sets the file system the override is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLogger sets the logger used to trace the pipeline.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithoutEnv ignores the TK_* environment variables.
func WithoutEnv() Option {
	return func(o *options) {
		o.noEnv = true
	}
}

func defaultSettings() Settings {
	levels := paths.DefaultMaxLevels
	return Settings{
		Marker:     paths.DefaultMarker,
		MaxLevels:  &levels,
		ConfigFile: OverrideFileName,
	}
}

// buildOptions layers explicit options over the environment over the
// built-in defaults. Earlier layers win: mergo only fills empty fields,
// and a set pointer counts as filled even when it points to zero.
func buildOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	layers := make([]Settings, 0, 2)
	if !o.noEnv {
		var fromEnv Settings
		if err := env.Parse(&fromEnv); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		layers = append(layers, fromEnv)
	}
	layers = append(layers, defaultSettings())

	for _, l := range layers {
		if err := mergo.Merge(&o.settings, l, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("merging settings: %w", err)
		}
	}

	if o.settings.Start == "" && o.settings.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		o.settings.Start = wd
	}
	if o.fs == nil {
		o.fs = loader.DefaultFS()
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	return o, nil
}
