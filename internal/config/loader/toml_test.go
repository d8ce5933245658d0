package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
	fail  map[string]error
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte), fail: make(map[string]error)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if err, ok := m.fail[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestLoader_LoadFileTOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/course/toolkit_config.toml", `
debug = true
dependencies = ["pandas", "numpy"]

[pp]
width = 120
indent = "  "

[pycharm.paths]
venv = "/opt/venv"
`)

	config, err := NewWithFS(memfs).LoadFile("/course/toolkit_config.toml")
	require.NoError(t, err)

	assert.Equal(t, true, config["debug"])
	assert.Equal(t, []any{"pandas", "numpy"}, config["dependencies"])

	pp, ok := config["pp"].(map[string]any)
	require.True(t, ok, "expected pp to be a map")
	assert.Equal(t, int64(120), pp["width"])
	assert.Equal(t, "  ", pp["indent"])

	pycharm, ok := config["pycharm"].(map[string]any)
	require.True(t, ok)
	paths, ok := pycharm["paths"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/opt/venv", paths["venv"])
}

func TestLoader_LoadFileNonExistent(t *testing.T) {
	config, err := NewWithFS(NewMemFS()).LoadFile("/nonexistent.toml")
	require.NoError(t, err, "missing override is not an error")
	require.NotNil(t, config)
	assert.Empty(t, config)
}

func TestLoader_LoadFileReadError(t *testing.T) {
	memfs := NewMemFS()
	memfs.fail["/locked.toml"] = fs.ErrPermission

	_, err := NewWithFS(memfs).LoadFile("/locked.toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "/locked.toml")
}

func TestLoader_LoadFileInvalidTOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[pp
width = 4
`)

	_, err := NewWithFS(memfs).LoadFile("/invalid.toml")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected ParseError, got %T", err)
	assert.Equal(t, "/invalid.toml", perr.Path)
	assert.Greater(t, perr.Line, 0)
	assert.Greater(t, perr.Column, 0)
	assert.Contains(t, err.Error(), "invalid document /invalid.toml:")
}

func TestLoader_LoadFileEmpty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")

	config, err := NewWithFS(memfs).LoadFile("/empty.toml")
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Empty(t, config)
}

func TestLoader_LoadBytes(t *testing.T) {
	config, err := New().LoadBytes("defaults.toml", []byte("[dropbox]\nurl = \"\"\n"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dropbox": map[string]any{"url": ""}}, config)

	_, err = New().LoadBytes("defaults.toml", []byte("debug = = true"), FormatTOML)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "defaults.toml", perr.Path)
	assert.Equal(t, 1, perr.Line)
}

func TestLoader_LoadReader(t *testing.T) {
	r := strings.NewReader(`
[describe]
quiet = true
`)
	config, err := New().LoadReader("<stdin>", r, FormatTOML)
	require.NoError(t, err)

	describe, ok := config["describe"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, describe["quiet"])
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "boom"}, "invalid document a.toml:3:7: boom"},
		{&ParseError{Path: "a.toml", Line: 3, Message: "boom"}, "invalid document a.toml:3: boom"},
		{&ParseError{Path: "a.toml", Message: "boom"}, "invalid document a.toml: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
