// Package pp pretty-prints values and renders errors according to the
// toolkit configuration.
package pp

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/config/layer"
)

const nestIndent = "  "

// Formatter renders values using the pp section of the configuration.
//
// Go maps have no order, so their keys are always sorted. SortDicts also
// sorts struct fields by name instead of declaration order.
type Formatter struct {
	opts  config.PP
	style lipgloss.Style
}

// New creates a formatter for the given options.
func New(opts config.PP) *Formatter {
	style := lipgloss.NewStyle()
	if opts.Color != "" {
		style = style.Foreground(lipgloss.Color(opts.Color))
	}
	return &Formatter{opts: opts, style: style}
}

// Sprint formats v.
func (f *Formatter) Sprint(v any) string {
	out := f.format(unwrap(v), 0)
	if f.opts.Indent != "" {
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = f.opts.Indent + line
		}
		out = strings.Join(lines, "\n")
	}
	if f.opts.Color != "" {
		out = f.style.Render(out)
	}
	return out
}

// Fprint writes the formatted value followed by a newline.
func (f *Formatter) Fprint(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, f.Sprint(v))
	return err
}

// unwrap converts configuration trees to plain values.
func unwrap(v any) any {
	if val, ok := v.(layer.Value); ok {
		return layer.Raw(val)
	}
	return v
}

type entry struct {
	key   string
	value string
}

func (f *Formatter) format(v any, depth int) string {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return "nil"
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "nil"
	}

	switch rv.Kind() {
	case reflect.Map:
		if f.tooDeep(depth) {
			return "{...}"
		}
		return f.container("{", "}", f.mapEntries(rv, depth), depth, false)
	case reflect.Struct:
		if f.tooDeep(depth) {
			return rv.Type().Name() + "{...}"
		}
		return rv.Type().Name() + f.container("{", "}", f.structEntries(rv, depth), depth, false)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("%q", rv.Bytes())
		}
		if f.tooDeep(depth) {
			return "[...]"
		}
		items := make([]entry, rv.Len())
		for i := range items {
			items[i] = entry{value: f.format(rv.Index(i).Interface(), depth+1)}
		}
		return f.container("[", "]", items, depth, f.opts.Compact)
	default:
		return f.scalar(rv)
	}
}

func (f *Formatter) tooDeep(depth int) bool {
	return f.opts.Depth > 0 && depth >= f.opts.Depth
}

func (f *Formatter) mapEntries(rv reflect.Value, depth int) []entry {
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   f.format(iter.Key().Interface(), depth+1),
			value: f.format(iter.Value().Interface(), depth+1),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries
}

func (f *Formatter) structEntries(rv reflect.Value, depth int) []entry {
	t := rv.Type()
	entries := make([]entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		entries = append(entries, entry{
			key:   field.Name,
			value: f.format(rv.Field(i).Interface(), depth+1),
		})
	}
	if f.opts.SortDicts {
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}
	return entries
}

// container lays out entries on one line when that fits the width or
// pretty output is off, and one entry per line otherwise. Compact packs
// as many entries per line as fit.
func (f *Formatter) container(opening, closing string, entries []entry, depth int, compact bool) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		if e.key != "" {
			parts[i] = e.key + ": " + e.value
		} else {
			parts[i] = e.value
		}
	}

	oneLine := opening + strings.Join(parts, ", ") + closing
	if !f.opts.Pretty || len(entries) == 0 {
		return oneLine
	}
	pad := strings.Repeat(nestIndent, depth)
	if !strings.Contains(oneLine, "\n") && len(pad)+len(oneLine) <= f.width() {
		return oneLine
	}

	inner := pad + nestIndent
	var b strings.Builder
	b.WriteString(opening)
	b.WriteString("\n")
	if compact {
		line := ""
		for _, p := range parts {
			candidate := p + ","
			if line != "" && len(inner)+len(line)+1+len(candidate) > f.width() {
				b.WriteString(inner + line + "\n")
				line = ""
			}
			if line == "" {
				line = candidate
			} else {
				line += " " + candidate
			}
		}
		if line != "" {
			b.WriteString(inner + line + "\n")
		}
	} else {
		for _, p := range parts {
			b.WriteString(inner + p + ",\n")
		}
	}
	b.WriteString(pad + closing)
	return b.String()
}

func (f *Formatter) width() int {
	if f.opts.Width <= 0 {
		return 80
	}
	return f.opts.Width
}

func (f *Formatter) scalar(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s := strconv.FormatInt(rv.Int(), 10)
		if f.opts.UnderscoreNumbers {
			s = groupDigits(s)
		}
		return s
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := strconv.FormatUint(rv.Uint(), 10)
		if f.opts.UnderscoreNumbers {
			s = groupDigits(s)
		}
		return s
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	default:
		return fmt.Sprintf("%v", rv.Interface())
	}
}

// groupDigits inserts an underscore every three digits: 1234567 becomes
// 1_234_567.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
