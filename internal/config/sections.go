package config

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Section accessor methods return snapshot structs. Mutating a returned
// struct, slice or map does not modify the configuration.

// document is the decoded form of a validated configuration.
type document struct {
	Debug        bool                    `toml:"debug"`
	Dependencies []string                `toml:"dependencies"`
	PrettyErrors PrettyErrors            `toml:"pretty_errors"`
	Doctests     Doctests                `toml:"doctests"`
	PP           PP                      `toml:"pp"`
	PyCharm      PyCharm                 `toml:"pycharm"`
	Github       map[string]GithubSource `toml:"github"`
	Dropbox      Dropbox                 `toml:"dropbox"`
	Describe     Describe                `toml:"describe"`
}

// PrettyErrors controls how errors are rendered for students.
type PrettyErrors struct {
	// PrettyErrors enables the boxed error layout.
	PrettyErrors bool `toml:"pretty_errors"`

	// LineNumberFirst puts the line number before the file name.
	LineNumberFirst bool `toml:"line_number_first"`

	// DisplayLink prints the source location as a clickable link.
	DisplayLink bool `toml:"display_link"`
}

// Doctests holds the options passed to the documentation test runner.
type Doctests struct {
	PrintDocstring bool `toml:"print_docstring"`
	PrintExamples  bool `toml:"print_examples"`
	PrintHdr       bool `toml:"print_hdr"`
	PrintMod       bool `toml:"print_mod"`
	Verbose        bool `toml:"verbose"`
	CompileFlags   bool `toml:"compileflags"`
}

// PP holds the pretty-printer options.
type PP struct {
	// Color is a hex colour, ANSI palette index or name. Empty disables colour.
	Color string `toml:"color"`

	// Indent prefixes every output line.
	Indent string `toml:"indent"`

	// Pretty enables multi-line layout.
	Pretty bool `toml:"pretty"`

	// SortDicts sorts mapping keys.
	SortDicts bool `toml:"sort_dicts"`

	// Depth limits nesting. Zero means unlimited.
	Depth int `toml:"depth"`

	// UnderscoreNumbers groups integer digits with underscores.
	UnderscoreNumbers bool `toml:"underscore_numbers"`

	// Width is the target line width.
	Width int `toml:"width"`

	// Compact packs sequence items onto as few lines as fit.
	Compact bool `toml:"compact"`
}

// PyCharm describes the course project layout.
type PyCharm struct {
	// ValidatePaths makes CheckPaths fail when a configured path is absent.
	ValidatePaths bool `toml:"validate_paths"`

	// PrjName is the project directory name.
	PrjName string `toml:"prjname"`

	// Paths holds the resolved project paths.
	Paths Paths `toml:"paths"`
}

// Paths is the table of absolute project paths.
type Paths struct {
	Root          string `toml:"root"`
	Backup        string `toml:"backup"`
	Dropbox       string `toml:"dropbox"`
	Venv          string `toml:"venv"`
	Idea          string `toml:"idea"`
	TkUtils       string `toml:"tk_utils"`
	ToolkitConfig string `toml:"toolkit_config"`
	TkUtilsConfig string `toml:"tk_utils_config"`
	DropboxZip    string `toml:"dropbox_zip"`
}

// Fields returns the paths keyed by their configuration name.
func (p Paths) Fields() map[string]string {
	return map[string]string{
		"root":            p.Root,
		"backup":          p.Backup,
		"dropbox":         p.Dropbox,
		"venv":            p.Venv,
		"idea":            p.Idea,
		"tk_utils":        p.TkUtils,
		"toolkit_config":  p.ToolkitConfig,
		"tk_utils_config": p.TkUtilsConfig,
		"dropbox_zip":     p.DropboxZip,
	}
}

// VenvPaths holds the paths derived from the virtual environment root.
type VenvPaths struct {
	Root   string
	Bin    string
	Pip    string
	Python string
}

// VenvPaths derives the executable locations inside the virtual
// environment for the current operating system.
func (p Paths) VenvPaths() VenvPaths {
	return venvPaths(p.Venv, runtime.GOOS)
}

func venvPaths(root, goos string) VenvPaths {
	bin, exe := "bin", ""
	if goos == "windows" {
		bin, exe = "Scripts", ".exe"
	}
	binDir := filepath.Join(root, bin)
	return VenvPaths{
		Root:   root,
		Bin:    binDir,
		Pip:    filepath.Join(binDir, "pip"+exe),
		Python: filepath.Join(binDir, "python"+exe),
	}
}

// RawContentsHost serves raw repository files.
const RawContentsHost = "https://raw.githubusercontent.com"

// GithubSource describes a repository the toolkit downloads modules from.
type GithubSource struct {
	User string `toml:"user"`
	Repo string `toml:"repo"`

	// Branch is empty for the repository's default branch.
	Branch string `toml:"branch"`

	// Base is the directory inside the repository holding Modules.
	Base string `toml:"base"`

	// Modules lists file names relative to Base.
	Modules []string `toml:"modules"`
}

func (g GithubSource) clone() GithubSource {
	g.Modules = cloneStrings(g.Modules)
	return g
}

// GitURL returns the clone URL, suffixed with @branch when one is set.
func (g GithubSource) GitURL() string {
	u := "https://github.com/" + g.User + "/" + g.Repo + ".git"
	if g.Branch != "" {
		u += "@" + g.Branch
	}
	return u
}

// ContentsURL returns the raw contents URL of the repository at Branch,
// or at HEAD when no branch is set.
func (g GithubSource) ContentsURL() string {
	branch := g.Branch
	if branch == "" {
		branch = "HEAD"
	}
	return RawContentsHost + "/" + g.User + "/" + g.Repo + "/" + branch
}

// ModuleURL returns the raw URL of a module file below Base.
func (g GithubSource) ModuleURL(module string) string {
	parts := []string{g.ContentsURL()}
	if base := strings.Trim(g.Base, "/"); base != "" {
		parts = append(parts, base)
	}
	parts = append(parts, strings.TrimLeft(module, "/"))
	return strings.Join(parts, "/")
}

// Dropbox holds the shared course folder link.
type Dropbox struct {
	// URL is empty when no folder is shared.
	URL string `toml:"url"`
}

// Describe holds the options of the object description helper.
type Describe struct {
	Quiet     bool `toml:"quiet"`
	ShowDoc   bool `toml:"show_doc"`
	ShowDecor bool `toml:"show_decor"`
	ShowBody  bool `toml:"show_body"`
	ShowSig   bool `toml:"show_sig"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
