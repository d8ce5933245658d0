// Package config loads the toolkit configuration.
//
// The configuration is assembled from two layers:
//
//	┌─────────────────────────────┐
//	│  2. Project override        │  ← <root>/toolkit_config.toml
//	├─────────────────────────────┤
//	│  1. Packaged defaults       │  ← defaults.toml (embedded)
//	└─────────────────────────────┘
//
// Tables merge key by key; any other value in the override, arrays
// included, replaces the default outright.
//
// # Pipeline
//
// Load discovers the project root (the nearest directory holding a .idea
// folder, or TK_PROJECT_ROOT), reads both layers, merges them, joins every
// relative path under pycharm.paths onto the root and validates the result
// against Schema. Validation is strict: unknown keys, missing keys and
// mistyped values all fail, and the first problem found is returned.
//
// # Sub-packages
//
//   - layer: value tree, merging and provenance
//   - loader: TOML, YAML and JSON document loading
//   - paths: root discovery and path resolution
//   - schema: schema description and validation
//   - watcher: re-validation when the override file changes
//
// # Basic Usage
//
//	cfg, err := config.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.PP().Width, cfg.Paths().Venv)
//
// Default caches the first successful result for the whole process. Code
// that needs a specific project should call Load with options and pass the
// result along, for example through NewContext.
package config
