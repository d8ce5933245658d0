package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/config/schema"
)

func pathsMapping(t *testing.T, paths map[string]any) layer.Mapping {
	t.Helper()
	m, err := layer.FromRaw(map[string]any{
		"pycharm": map[string]any{"paths": paths},
	})
	require.NoError(t, err)
	return m
}

func TestResolve(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "home", "student", "toolkit")
	abs := filepath.Join(string(filepath.Separator), "opt", "venv")

	m := pathsMapping(t, map[string]any{
		"root":   ".",
		"venv":   ".venv",
		"backup": abs,
		"empty":  "",
	})
	fields := []string{
		"pycharm.paths.backup",
		"pycharm.paths.empty",
		"pycharm.paths.root",
		"pycharm.paths.venv",
	}

	out, err := Resolve(m, root, fields, nil)
	require.NoError(t, err)

	get := func(field string) string {
		v, ok := out.Get(field)
		require.True(t, ok, field)
		return v.(layer.Scalar).V.(string)
	}

	assert.Equal(t, root, get("pycharm.paths.root"))
	assert.Equal(t, filepath.Join(root, ".venv"), get("pycharm.paths.venv"))
	assert.Equal(t, abs, get("pycharm.paths.backup"))
	assert.Equal(t, root, get("pycharm.paths.empty"))
	for _, f := range fields {
		assert.True(t, filepath.IsAbs(get(f)), f)
	}

	// The input is not modified.
	orig, _ := m.Get("pycharm.paths.root")
	assert.Equal(t, ".", orig.(layer.Scalar).V)
}

func TestResolve_MissingField(t *testing.T) {
	m := pathsMapping(t, map[string]any{"root": "."})

	_, err := Resolve(m, "/r", []string{"pycharm.paths.root", "pycharm.paths.venv"}, nil)
	require.Error(t, err)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "pycharm.paths.venv", resErr.Path)
	assert.True(t, errors.Is(err, ErrPathResolution))
	assert.True(t, errors.Is(err, schema.ErrMissingField))
	assert.Equal(t, "cannot resolve path pycharm.paths.venv: missing required field pycharm.paths.venv", err.Error())
}

func TestResolve_NonStringLeftAlone(t *testing.T) {
	m := pathsMapping(t, map[string]any{"root": 5})

	out, err := Resolve(m, "/r", []string{"pycharm.paths.root"}, nil)
	require.NoError(t, err)
	v, _ := out.Get("pycharm.paths.root")
	assert.Equal(t, int64(5), v.(layer.Scalar).V)
}

func TestResolve_AbsoluteUnchanged(t *testing.T) {
	sep := string(filepath.Separator)
	abs := sep + "opt" + sep + sep + "venv" + sep
	m := pathsMapping(t, map[string]any{"venv": abs})

	out, err := Resolve(m, "/r", []string{"pycharm.paths.venv"}, nil)
	require.NoError(t, err)
	v, _ := out.Get("pycharm.paths.venv")
	assert.Equal(t, abs, v.(layer.Scalar).V)
}

func TestResolve_MissingFieldSource(t *testing.T) {
	m := pathsMapping(t, map[string]any{"root": "."})
	lookup := func(path string) string { return "override (/p/toolkit_config.toml)" }

	_, err := Resolve(m, "/r", []string{"pycharm.paths.venv"}, lookup)

	var missing *schema.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "pycharm.paths.venv", missing.Path)
	assert.Equal(t, "override (/p/toolkit_config.toml)", missing.Source)
}

func TestResolve_AncestorNotTable(t *testing.T) {
	m, err := layer.FromRaw(map[string]any{
		"pycharm": map[string]any{"paths": "x"},
	})
	require.NoError(t, err)

	out, err := Resolve(m, "/r", []string{"pycharm.paths.backup", "pycharm.paths.venv"}, nil)
	require.NoError(t, err)
	v, _ := out.Get("pycharm.paths")
	assert.Equal(t, layer.Scalar{V: "x"}, v)
}

func TestFindRoot(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "course")
	deep := filepath.Join(project, "lectures", "week1", "code")
	require.NoError(t, os.MkdirAll(filepath.Join(project, DefaultMarker), 0o755))
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := FindRoot(deep, DefaultMarker, DefaultMaxLevels)
	require.NoError(t, err)
	assert.Equal(t, project, got)

	got, err = FindRoot(project, "", DefaultMaxLevels)
	require.NoError(t, err)
	assert.Equal(t, project, got)
}

func TestFindRoot_LevelBound(t *testing.T) {
	dir := t.TempDir()
	deep := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultMarker), 0o755))
	require.NoError(t, os.MkdirAll(deep, 0o755))

	_, err := FindRoot(deep, DefaultMarker, 2)
	require.Error(t, err)

	var notFound *ProjectNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, DefaultMarker, notFound.Marker)
	assert.Equal(t, 2, notFound.Levels)
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	got, err := FindRoot(deep, DefaultMarker, 3)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFindRoot_MarkerMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	start := filepath.Join(dir, "course")
	require.NoError(t, os.MkdirAll(start, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(start, DefaultMarker), nil, 0o644))

	_, err := FindRoot(start, DefaultMarker, 1)
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	require.NoError(t, os.WriteFile(filepath.Join(start, "course.lock"), nil, 0o644))
	got, err := FindRoot(start, "course.lock", 0)
	require.NoError(t, err)
	assert.Equal(t, start, got)
}

func TestFindRoot_ZeroLevels(t *testing.T) {
	dir := t.TempDir()
	start := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultMarker), 0o755))
	require.NoError(t, os.MkdirAll(start, 0o755))

	_, err := FindRoot(start, DefaultMarker, 0)
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	got, err := FindRoot(dir, DefaultMarker, 0)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFindRoot_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := FindRoot(dir, "no-such-marker-"+filepath.Base(dir), 100)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestCheckRoot(t *testing.T) {
	dir := t.TempDir()

	got, err := CheckRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = CheckRoot(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = CheckRoot(file)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}
