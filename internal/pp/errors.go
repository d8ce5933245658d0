package pp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkutils/toolkit/internal/config"
)

var (
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorLabelStyle = lipgloss.NewStyle().Faint(true)
	errorBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// FormatError renders err for display. Without pretty errors the plain
// message is returned. Otherwise the error is boxed with a title naming its
// kind and the field, source and location it carries.
func FormatError(err error, opts config.PrettyErrors) string {
	if err == nil {
		return ""
	}
	if !opts.PrettyErrors {
		return err.Error()
	}

	title, details := describe(err, opts)
	lines := []string{errorTitleStyle.Render(title), err.Error()}
	if len(details) > 0 {
		lines = append(lines, "")
	}
	for _, d := range details {
		lines = append(lines, errorLabelStyle.Render(d[0]+":")+" "+d[1])
	}
	return errorBoxStyle.Render(strings.Join(lines, "\n"))
}

// describe extracts a title and labelled details from the known error
// types of the configuration pipeline.
func describe(err error, opts config.PrettyErrors) (string, [][2]string) {
	var (
		parseErr    *config.ParseError
		unknownErr  *config.UnknownFieldError
		missingErr  *config.MissingFieldError
		typeErr     *config.TypeValidationError
		notFoundErr *config.ProjectNotFoundError
	)

	switch {
	case errors.As(err, &parseErr):
		return "Invalid configuration file", [][2]string{
			{"location", location(parseErr.Path, parseErr.Line, parseErr.Column, opts)},
		}
	case errors.As(err, &unknownErr):
		return "Unknown setting", fieldDetails(unknownErr.Path, unknownErr.Source)
	case errors.As(err, &missingErr):
		return "Missing setting", fieldDetails(missingErr.Path, missingErr.Source)
	case errors.As(err, &typeErr):
		details := fieldDetails(typeErr.Path, typeErr.Source)
		details = append(details, [2]string{"expected", typeErr.Expected})
		return "Invalid value", details
	case errors.As(err, &notFoundErr):
		details := [][2]string{{"searched from", notFoundErr.Start}}
		if notFoundErr.Marker != "" {
			details = append(details, [2]string{"marker", notFoundErr.Marker})
		}
		return "Project not found", details
	default:
		return "Error", nil
	}
}

func fieldDetails(path, source string) [][2]string {
	details := [][2]string{{"field", path}}
	if source != "" {
		details = append(details, [2]string{"source", source})
	}
	return details
}

// location formats a file position as path:line:col, or line:col path
// when the line number goes first. With links enabled the path becomes a
// file:// URL.
func location(path string, line, col int, opts config.PrettyErrors) string {
	if opts.DisplayLink {
		if abs, err := filepath.Abs(path); err == nil {
			path = "file://" + filepath.ToSlash(abs)
		}
	}
	if line <= 0 {
		return path
	}
	pos := fmt.Sprintf("%d", line)
	if col > 0 {
		pos = fmt.Sprintf("%d:%d", line, col)
	}
	if opts.LineNumberFirst {
		return pos + " " + path
	}
	return path + ":" + pos
}
