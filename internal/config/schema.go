package config

import (
	"sync"

	"github.com/tkutils/toolkit/internal/config/schema"
)

// Schema returns the schema every merged configuration must satisfy.
// The returned value is shared and must not be modified.
func Schema() *schema.Schema {
	return configSchema()
}

var configSchema = sync.OnceValue(buildSchema)

func buildSchema() *schema.Schema {
	githubSource := schema.Object(map[string]*schema.Schema{
		"user":    schema.NewBuilder().Type(schema.TypeNameString).MinLength(1).Build(),
		"repo":    schema.NewBuilder().Type(schema.TypeNameString).MinLength(1).Build(),
		"branch":  schema.String(),
		"base":    schema.String(),
		"modules": schema.ArrayOf(schema.String()),
	})

	return schema.NewBuilder().
		Title("toolkit configuration").
		Type(schema.TypeNameObject).
		Property("debug", schema.Boolean()).
		Property("dependencies", schema.ArrayOf(schema.String())).
		Property("pretty_errors", schema.Object(map[string]*schema.Schema{
			"pretty_errors":     schema.Boolean(),
			"line_number_first": schema.Boolean(),
			"display_link":      schema.Boolean(),
		})).
		Property("doctests", schema.Object(map[string]*schema.Schema{
			"print_docstring": schema.Boolean(),
			"print_examples":  schema.Boolean(),
			"print_hdr":       schema.Boolean(),
			"print_mod":       schema.Boolean(),
			"verbose":         schema.Boolean(),
			"compileflags":    schema.Boolean(),
		})).
		Property("pp", schema.Object(map[string]*schema.Schema{
			"color":              schema.NewBuilder().Type(schema.TypeNameString).Format(schema.FormatColor).Build(),
			"indent":             schema.String(),
			"pretty":             schema.Boolean(),
			"sort_dicts":         schema.Boolean(),
			"depth":              schema.NewBuilder().Type(schema.TypeNameInteger).Minimum(0).Build(),
			"underscore_numbers": schema.Boolean(),
			"width":              schema.NewBuilder().Type(schema.TypeNameInteger).Minimum(1).Build(),
			"compact":            schema.Boolean(),
		})).
		Property("pycharm", schema.Object(map[string]*schema.Schema{
			"validate_paths": schema.Boolean(),
			"prjname":        schema.String(),
			"paths": schema.Object(map[string]*schema.Schema{
				"root":            schema.Path(),
				"backup":          schema.Path(),
				"dropbox":         schema.Path(),
				"venv":            schema.Path(),
				"idea":            schema.Path(),
				"tk_utils":        schema.Path(),
				"toolkit_config":  schema.Path(),
				"tk_utils_config": schema.Path(),
				"dropbox_zip":     schema.Path(),
			}),
		})).
		Property("github", schema.MapOf(githubSource)).
		Property("dropbox", schema.Object(map[string]*schema.Schema{
			"url": schema.NewBuilder().Type(schema.TypeNameString).Format(schema.FormatURI).Build(),
		})).
		Property("describe", schema.Object(map[string]*schema.Schema{
			"quiet":      schema.Boolean(),
			"show_doc":   schema.Boolean(),
			"show_decor": schema.Boolean(),
			"show_body":  schema.Boolean(),
			"show_sig":   schema.Boolean(),
		})).
		Build()
}
