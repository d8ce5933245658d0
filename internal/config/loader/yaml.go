package loader

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	yamlLineRe   = regexp.MustCompile(`line (\d+)`)
	yamlColumnRe = regexp.MustCompile(`column (\d+)`)
)

// parseYAML parses YAML (or JSON) data into a map.
func parseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		msg := strings.TrimPrefix(err.Error(), "yaml: ")
		perr := &ParseError{
			Path:    source,
			Message: msg,
			Err:     err,
		}
		if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		if m := yamlColumnRe.FindStringSubmatch(msg); m != nil {
			perr.Column, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}

	return config, nil
}
