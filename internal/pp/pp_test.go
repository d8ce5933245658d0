package pp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/config/layer"
)

func TestSprint_Scalars(t *testing.T) {
	f := New(config.PP{Pretty: true, Width: 40, UnderscoreNumbers: true})

	tests := []struct {
		in   any
		want string
	}{
		{1234567, "1_234_567"},
		{int64(-1234), "-1_234"},
		{123, "123"},
		{uint(1000), "1_000"},
		{1.5, "1.5"},
		{"a", `"a"`},
		{true, "true"},
		{nil, "nil"},
		{[]byte("hi"), `"hi"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Sprint(tt.in))
	}

	plain := New(config.PP{Width: 40})
	assert.Equal(t, "1234567", plain.Sprint(1234567))
}

func TestSprint_OneLine(t *testing.T) {
	f := New(config.PP{Pretty: true, Width: 40})

	got := f.Sprint(map[string]any{"b": 1, "a": []any{1, 2}})
	assert.Equal(t, `{"a": [1, 2], "b": 1}`, got)
	assert.Equal(t, "[]", f.Sprint([]string{}))
}

func TestSprint_MultiLine(t *testing.T) {
	f := New(config.PP{Pretty: true, Width: 20})

	got := f.Sprint(map[string]any{"alpha": "aaaaaaaaaa", "beta": "bbbbbbbbbb"})
	want := "{\n" +
		`  "alpha": "aaaaaaaaaa",` + "\n" +
		`  "beta": "bbbbbbbbbb",` + "\n" +
		"}"
	assert.Equal(t, want, got)

	notPretty := New(config.PP{Width: 20})
	assert.Equal(t, `{"alpha": "aaaaaaaaaa", "beta": "bbbbbbbbbb"}`,
		notPretty.Sprint(map[string]any{"alpha": "aaaaaaaaaa", "beta": "bbbbbbbbbb"}))
}

func TestSprint_Compact(t *testing.T) {
	f := New(config.PP{Pretty: true, Compact: true, Width: 12})

	got := f.Sprint([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	assert.Equal(t, "[\n  0, 1, 2,\n  3, 4, 5,\n  6, 7, 8,\n  9,\n]", got)
}

func TestSprint_Depth(t *testing.T) {
	f := New(config.PP{Pretty: true, Width: 80, Depth: 1})
	assert.Equal(t, `{"a": {...}, "b": [...]}`, f.Sprint(map[string]any{
		"a": map[string]any{"x": 1},
		"b": []int{1},
	}))

	unlimited := New(config.PP{Pretty: true, Width: 80})
	assert.Equal(t, `{"a": {"x": 1}}`, unlimited.Sprint(map[string]any{"a": map[string]any{"x": 1}}))
}

type point struct {
	Y, X   int
	hidden int
}

func TestSprint_Struct(t *testing.T) {
	p := point{Y: 2, X: 1, hidden: 3}

	assert.Equal(t, "point{Y: 2, X: 1}", New(config.PP{Width: 80}).Sprint(p))
	assert.Equal(t, "point{X: 1, Y: 2}", New(config.PP{Width: 80, SortDicts: true}).Sprint(&p))
}

func TestSprint_Indent(t *testing.T) {
	f := New(config.PP{Pretty: true, Width: 10, Indent: "> "})

	got := f.Sprint([]string{"aaaa", "bbbb"})
	for _, line := range strings.Split(got, "\n") {
		assert.True(t, strings.HasPrefix(line, "> "), "line %q", line)
	}
}

func TestSprint_LayerValues(t *testing.T) {
	m, err := layer.FromRaw(map[string]any{"pp": map[string]any{"width": 40}})
	require.NoError(t, err)

	f := New(config.PP{Width: 80})
	assert.Equal(t, `{"pp": {"width": 40}}`, f.Sprint(m))
}

func TestSprint_Color(t *testing.T) {
	f := New(config.PP{Width: 80, Color: "#ff0000"})
	assert.Contains(t, f.Sprint("x"), `"x"`)
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(config.PP{Width: 80}).Fprint(&buf, []int{1, 2}))
	assert.Equal(t, "[1, 2]\n", buf.String())
}

func TestGroupDigits(t *testing.T) {
	tests := map[string]string{
		"0":        "0",
		"999":      "999",
		"1000":     "1_000",
		"12345":    "12_345",
		"123456":   "123_456",
		"-1000000": "-1_000_000",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupDigits(in), in)
	}
}

func TestHeader(t *testing.T) {
	h := Header("Title", 11)
	lines := strings.Split(h, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("-", 11), lines[0])
	assert.Equal(t, lines[0], lines[2])
	assert.Contains(t, lines[1], "Title")

	long := Header("a very long title", 4)
	assert.Equal(t, strings.Repeat("-", len("a very long title")+2), strings.Split(long, "\n")[0])
}
