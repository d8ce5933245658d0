package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pelletier/go-toml/v2"

	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/config/loader"
	"github.com/tkutils/toolkit/internal/config/paths"
	"github.com/tkutils/toolkit/internal/config/schema"
)

// Config is a validated, path-resolved configuration. It has no setters;
// every accessor returns a copy.
type Config struct {
	root     string
	override string
	data     layer.Mapping
	doc      document
}

// Load runs the configuration pipeline: discover the project root, load
// the packaged defaults and the override document, merge them, resolve
// path fields against the root and validate the result.
func Load(opts ...Option) (*Config, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	log := o.log

	root, err := findRoot(o.settings)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("root", root).Msg("project root found")

	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}

	overridePath := paths.Join(root, o.settings.ConfigFile)
	raw, err := loader.NewWithFS(o.fs).LoadFile(overridePath)
	if err != nil {
		return nil, err
	}
	override, err := layer.FromRaw(raw)
	if err != nil {
		return nil, conversionError(err, overridePath)
	}
	log.Debug().Str("path", overridePath).Int("keys", len(override)).Msg("override loaded")

	stack := layer.NewManager()
	stack.AddLayer(layer.NewLayer(layer.SourceDefaults, "", defaults))
	stack.AddLayer(layer.NewLayer(layer.SourceOverride, overridePath, override))
	merged := stack.Merge()

	cfg, err := build(merged.Data, root, merged.OriginName)
	if err != nil {
		return nil, err
	}
	cfg.override = overridePath
	log.Debug().Msg("configuration validated")
	return cfg, nil
}

// Validate resolves the path fields of m against root and validates the
// result. Equal inputs produce Equal configurations. m is not modified.
func Validate(m layer.Mapping, root string) (*Config, error) {
	return build(m, root, nil)
}

// conversionError reports a null in the override as the validation error
// of the field holding it.
func conversionError(err error, overridePath string) error {
	var nullErr *layer.NullError
	if !errors.As(err, &nullErr) {
		return fmt.Errorf("converting %s: %w", overridePath, err)
	}
	source := layer.SourceOverride.String() + " (" + overridePath + ")"
	prop := propertyAt(nullErr.Path)
	if prop == nil {
		return &UnknownFieldError{Path: nullErr.Path, Source: source}
	}
	return &TypeValidationError{Path: nullErr.Path, Expected: prop.ExpectedType(), Source: source}
}

// propertyAt returns the schema of a dotted path that may end in array
// indexes, such as dependencies[2].
func propertyAt(path string) *schema.Schema {
	base, indexes, _ := strings.Cut(path, "[")
	prop := Schema().GetProperty(base)
	if indexes == "" {
		return prop
	}
	for i, n := 0, strings.Count(indexes, "[")+1; i < n; i++ {
		if prop == nil {
			return nil
		}
		prop = prop.Items
	}
	return prop
}

func findRoot(s Settings) (string, error) {
	if s.Root != "" {
		return paths.CheckRoot(s.Root)
	}
	levels := paths.DefaultMaxLevels
	if s.MaxLevels != nil {
		levels = *s.MaxLevels
	}
	return paths.FindRoot(s.Start, s.Marker, levels)
}

func build(m layer.Mapping, root string, sourceOf schema.SourceLookup) (*Config, error) {
	resolved, err := paths.Resolve(m, root, Schema().PathFields(), sourceOf)
	if err != nil {
		return nil, err
	}

	v := schema.NewValidator(Schema())
	if sourceOf != nil {
		v.WithSourceLookup(sourceOf)
	}
	if err := v.Validate(resolved); err != nil {
		return nil, err
	}

	doc, err := decode(resolved)
	if err != nil {
		return nil, err
	}
	return &Config{root: root, data: resolved, doc: doc}, nil
}

// decode converts a validated mapping into the typed sections.
func decode(m layer.Mapping) (document, error) {
	var doc document
	data, err := toml.Marshal(m.Raw())
	if err != nil {
		return doc, fmt.Errorf("encoding configuration: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return doc, fmt.Errorf("decoding configuration: %w", err)
	}
	return doc, nil
}

var (
	defaultMu  sync.Mutex
	defaultCfg atomic.Pointer[Config]
)

// Default returns the process-wide configuration, loading it on first
// use with the environment and the working directory. Later calls return
// the same instance. A failed load is not cached: the next call runs the
// pipeline again.
func Default() (*Config, error) {
	if c := defaultCfg.Load(); c != nil {
		return c, nil
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if c := defaultCfg.Load(); c != nil {
		return c, nil
	}
	c, err := Load()
	if err != nil {
		return nil, err
	}
	defaultCfg.Store(c)
	return c, nil
}

type contextKey struct{}

// NewContext returns a context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration stored in ctx, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(*Config)
	return cfg, ok && cfg != nil
}

// Root returns the project root.
func (c *Config) Root() string { return c.root }

// OverridePath returns the override document consulted by Load. It is
// empty for configurations built with Validate.
func (c *Config) OverridePath() string { return c.override }

// Debug reports whether debug output is enabled.
func (c *Config) Debug() bool { return c.doc.Debug }

// Dependencies returns the packages the course environment installs.
func (c *Config) Dependencies() []string { return cloneStrings(c.doc.Dependencies) }

// PrettyErrors returns the error rendering options.
func (c *Config) PrettyErrors() PrettyErrors { return c.doc.PrettyErrors }

// Doctests returns the documentation test options.
func (c *Config) Doctests() Doctests { return c.doc.Doctests }

// PP returns the pretty-printer options.
func (c *Config) PP() PP { return c.doc.PP }

// PyCharm returns the project layout section.
func (c *Config) PyCharm() PyCharm { return c.doc.PyCharm }

// Paths returns the resolved project paths.
func (c *Config) Paths() Paths { return c.doc.PyCharm.Paths }

// Github returns every configured source keyed by name.
func (c *Config) Github() map[string]GithubSource {
	out := make(map[string]GithubSource, len(c.doc.Github))
	for name, src := range c.doc.Github {
		out[name] = src.clone()
	}
	return out
}

// GithubSources returns the configured source names, sorted.
func (c *Config) GithubSources() []string {
	names := make([]string, 0, len(c.doc.Github))
	for name := range c.doc.Github {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GithubSource returns the named source.
func (c *Config) GithubSource(name string) (GithubSource, error) {
	src, ok := c.doc.Github[name]
	if !ok {
		return GithubSource{}, fmt.Errorf("github source %q: %w", name, ErrSectionNotFound)
	}
	return src.clone(), nil
}

// Dropbox returns the shared folder section.
func (c *Config) Dropbox() Dropbox { return c.doc.Dropbox }

// Describe returns the object description options.
func (c *Config) Describe() Describe { return c.doc.Describe }

// Mapping returns a copy of the resolved configuration tree.
func (c *Config) Mapping() layer.Mapping { return c.data.Clone() }

// Section returns a copy of one top-level section, or of the whole tree
// when name is empty. Dotted names select nested tables.
func (c *Config) Section(name string) (layer.Value, error) {
	if name == "" {
		return c.data.Clone(), nil
	}
	v, ok := c.data.Get(name)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", name, ErrSectionNotFound)
	}
	return layer.Clone(v), nil
}

// TOML renders the resolved configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c.data.Raw())
}

// Equal reports whether two configurations hold the same root and values.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.root == other.root && layer.Equal(c.data, other.data)
}

// PathStatus reports whether a configured path exists.
type PathStatus struct {
	// Field is the configuration key under pycharm.paths.
	Field string
	// Path is the resolved absolute path.
	Path string
	// Exists is true when the path is present on disk.
	Exists bool
}

// CheckPaths stats every configured path, sorted by field name. When
// pycharm.validate_paths is set, a missing path is also reported as an
// error wrapping ErrPathNotExist for each absent entry.
func (c *Config) CheckPaths() ([]PathStatus, error) {
	fields := c.doc.PyCharm.Paths.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]PathStatus, 0, len(names))
	var errs []error
	for _, name := range names {
		p := fields[name]
		_, err := os.Stat(p)
		st := PathStatus{Field: name, Path: p, Exists: err == nil}
		statuses = append(statuses, st)
		if !st.Exists && c.doc.PyCharm.ValidatePaths {
			errs = append(errs, fmt.Errorf("pycharm.paths.%s %s: %w", name, p, ErrPathNotExist))
		}
	}
	return statuses, errors.Join(errs...)
}
