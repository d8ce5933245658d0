package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGithubSource_URLs(t *testing.T) {
	src := GithubSource{User: "u", Repo: "r", Branch: "main", Base: "pkg/", Modules: []string{"a.py"}}

	assert.Equal(t, "https://github.com/u/r.git@main", src.GitURL())
	assert.Equal(t, "https://raw.githubusercontent.com/u/r/main", src.ContentsURL())
	assert.Equal(t, "https://raw.githubusercontent.com/u/r/main/pkg/a.py", src.ModuleURL("a.py"))

	src.Branch = ""
	src.Base = ""
	assert.Equal(t, "https://github.com/u/r.git", src.GitURL())
	assert.Equal(t, "https://raw.githubusercontent.com/u/r/HEAD", src.ContentsURL())
	assert.Equal(t, "https://raw.githubusercontent.com/u/r/HEAD/a.py", src.ModuleURL("/a.py"))
}

func TestVenvPaths(t *testing.T) {
	root := filepath.Join("p", ".venv")

	unix := venvPaths(root, "linux")
	assert.Equal(t, filepath.Join(root, "bin"), unix.Bin)
	assert.Equal(t, filepath.Join(root, "bin", "pip"), unix.Pip)
	assert.Equal(t, filepath.Join(root, "bin", "python"), unix.Python)

	win := venvPaths(root, "windows")
	assert.Equal(t, filepath.Join(root, "Scripts"), win.Bin)
	assert.Equal(t, filepath.Join(root, "Scripts", "python.exe"), win.Python)

	assert.Equal(t, root, Paths{Venv: root}.VenvPaths().Root)
}

func TestPaths_Fields(t *testing.T) {
	p := Paths{Root: "/r", Venv: "/r/.venv", DropboxZip: "/r/z.zip"}
	f := p.Fields()

	assert.Len(t, f, 9)
	assert.Equal(t, "/r/.venv", f["venv"])
	assert.Equal(t, "/r/z.zip", f["dropbox_zip"])
	assert.Equal(t, "", f["idea"])
}
