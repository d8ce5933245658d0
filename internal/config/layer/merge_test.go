package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMapping(t *testing.T, raw map[string]any) Mapping {
	t.Helper()
	m, err := FromRaw(raw)
	require.NoError(t, err)
	return m
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		defaults map[string]any
		override map[string]any
		expected map[string]any
	}{
		{
			name:     "nil defaults",
			defaults: nil,
			override: map[string]any{"a": 1},
			expected: map[string]any{"a": int64(1)},
		},
		{
			name:     "nil override",
			defaults: map[string]any{"a": 1},
			override: nil,
			expected: map[string]any{"a": int64(1)},
		},
		{
			name:     "no overlap",
			defaults: map[string]any{"a": 1},
			override: map[string]any{"b": 2},
			expected: map[string]any{"a": int64(1), "b": int64(2)},
		},
		{
			name:     "override wins",
			defaults: map[string]any{"pp": map[string]any{"width": 40}},
			override: map[string]any{"pp": map[string]any{"width": 120}},
			expected: map[string]any{"pp": map[string]any{"width": int64(120)}},
		},
		{
			name: "nested merge keeps defaults-only keys",
			defaults: map[string]any{
				"pycharm": map[string]any{
					"paths": map[string]any{"root": ".", "venv": ".venv"},
				},
			},
			override: map[string]any{
				"pycharm": map[string]any{
					"paths": map[string]any{"venv": "/opt/venv"},
				},
			},
			expected: map[string]any{
				"pycharm": map[string]any{
					"paths": map[string]any{"root": ".", "venv": "/opt/venv"},
				},
			},
		},
		{
			name:     "sequence replaced wholesale",
			defaults: map[string]any{"dependencies": []any{"pandas", "requests"}},
			override: map[string]any{"dependencies": []any{"numpy"}},
			expected: map[string]any{"dependencies": []any{"numpy"}},
		},
		{
			name:     "empty sequence replaces",
			defaults: map[string]any{"dependencies": []any{"pandas"}},
			override: map[string]any{"dependencies": []any{}},
			expected: map[string]any{"dependencies": []any{}},
		},
		{
			name:     "scalar overwrites mapping",
			defaults: map[string]any{"value": map[string]any{"a": 1}},
			override: map[string]any{"value": "string"},
			expected: map[string]any{"value": "string"},
		},
		{
			name:     "mapping overwrites scalar",
			defaults: map[string]any{"value": "string"},
			override: map[string]any{"value": map[string]any{"a": 1}},
			expected: map[string]any{"value": map[string]any{"a": int64(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var defaults, override Mapping
			if tt.defaults != nil {
				defaults = mustMapping(t, tt.defaults)
			}
			if tt.override != nil {
				override = mustMapping(t, tt.override)
			}

			result := Merge(defaults, override)
			assert.Equal(t, tt.expected, result.Raw())
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	defaults := mustMapping(t, map[string]any{
		"pp":           map[string]any{"width": 40, "indent": ""},
		"dependencies": []any{"pandas"},
	})
	override := mustMapping(t, map[string]any{
		"pp":           map[string]any{"width": 120},
		"dependencies": []any{"numpy"},
	})
	defaultsBefore := defaults.Clone()
	overrideBefore := override.Clone()

	result := Merge(defaults, override)

	assert.True(t, Equal(defaults, defaultsBefore), "defaults modified")
	assert.True(t, Equal(override, overrideBefore), "override modified")

	// The result must not alias either input.
	result.Set("pp.width", Scalar{V: int64(1)})
	result["dependencies"].(Sequence)[0] = Scalar{V: "changed"}
	v, _ := override.Get("pp.width")
	assert.Equal(t, Scalar{V: int64(120)}, v)
	assert.Equal(t, Scalar{V: "numpy"}, override["dependencies"].(Sequence)[0])
}

func TestMerge_Deterministic(t *testing.T) {
	defaults := mustMapping(t, map[string]any{
		"a": map[string]any{"x": 1, "y": 2, "z": 3},
		"b": []any{1, 2},
	})
	override := mustMapping(t, map[string]any{
		"a": map[string]any{"y": 20, "w": 0},
		"c": true,
	})

	first := Merge(defaults, override)
	for i := 0; i < 50; i++ {
		assert.True(t, Equal(first, Merge(defaults, override)))
	}
}

func TestMapping_Get(t *testing.T) {
	data := mustMapping(t, map[string]any{
		"pycharm": map[string]any{
			"prjname": "toolkit",
			"paths":   map[string]any{"root": "."},
		},
	})

	tests := []struct {
		path   string
		want   Value
		wantOK bool
	}{
		{"pycharm.prjname", Scalar{V: "toolkit"}, true},
		{"pycharm.paths.root", Scalar{V: "."}, true},
		{"pycharm.paths.venv", nil, false},
		{"pycharm.prjname.deeper", nil, false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := data.Get(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMapping_SetDelete(t *testing.T) {
	data := make(Mapping)
	data.Set("pycharm.paths.root", Scalar{V: "/srv"})

	got, ok := data.Get("pycharm.paths.root")
	require.True(t, ok)
	assert.Equal(t, Scalar{V: "/srv"}, got)

	assert.True(t, data.Delete("pycharm.paths.root"))
	assert.False(t, data.Delete("pycharm.paths.root"))
	assert.False(t, data.Delete("nope.nothing"))

	_, ok = data.Get("pycharm.paths")
	assert.True(t, ok, "intermediate mapping should remain")
}

func TestDiff(t *testing.T) {
	old := mustMapping(t, map[string]any{
		"pp":    map[string]any{"width": 40, "compact": false},
		"debug": false,
	})
	updated := mustMapping(t, map[string]any{
		"pp":       map[string]any{"width": 120, "compact": false},
		"dropbox":  map[string]any{"url": "https://example.com"},
		"unrelated": []any{"x"},
	})

	added, modified, removed := Diff(old, updated)
	assert.Equal(t, []string{"dropbox.url", "unrelated"}, added)
	assert.Equal(t, []string{"pp.width"}, modified)
	assert.Equal(t, []string{"debug"}, removed)
}
