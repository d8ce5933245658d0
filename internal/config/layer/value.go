package layer

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNull is matched by every *NullError.
var ErrNull = errors.New("null value")

// NullError reports a null or empty value in a decoded document. TOML has
// no null, but YAML and JSON overrides can carry one.
type NullError struct {
	// Path is the full dotted path of the null value.
	Path string
}

func (e *NullError) Error() string {
	return e.Path + ": null values are not supported"
}

// Is matches ErrNull.
func (e *NullError) Is(target error) bool {
	return target == ErrNull
}

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindScalar is a string, bool, int64, float64 or time value.
	KindScalar Kind = iota
	// KindMapping is a nested table.
	KindMapping
	// KindSequence is an ordered list.
	KindSequence
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is one node of a configuration tree. The concrete types are
// Scalar, Mapping and Sequence.
type Value interface {
	Kind() Kind
	clone() Value
	raw() any
}

// Scalar holds a leaf value.
type Scalar struct {
	V any
}

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

func (s Scalar) clone() Value { return s }

func (s Scalar) raw() any { return s.V }

// String returns the scalar formatted with %v.
func (s Scalar) String() string { return fmt.Sprintf("%v", s.V) }

// Sequence holds an ordered list of values.
type Sequence []Value

// Kind implements Value.
func (Sequence) Kind() Kind { return KindSequence }

func (s Sequence) clone() Value {
	if s == nil {
		return Sequence(nil)
	}
	out := make(Sequence, len(s))
	for i, v := range s {
		out[i] = v.clone()
	}
	return out
}

func (s Sequence) raw() any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v.raw()
	}
	return out
}

// Mapping holds a table of named values.
type Mapping map[string]Value

// Kind implements Value.
func (Mapping) Kind() Kind { return KindMapping }

func (m Mapping) clone() Value { return m.Clone() }

func (m Mapping) raw() any { return m.Raw() }

// Clone returns a deep copy of the mapping.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}

// Keys returns the mapping keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw converts the mapping back to plain Go maps and slices.
func (m Mapping) Raw() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.raw()
	}
	return out
}

// FromRaw converts a decoded document into a Mapping. Integers are
// normalised to int64 and floats to float64 so values from different
// parsers compare equal.
func FromRaw(data map[string]any) (Mapping, error) {
	return fromRawMap("", data)
}

func fromRawMap(prefix string, data map[string]any) (Mapping, error) {
	out := make(Mapping, len(data))
	for k, v := range data {
		val, err := fromRaw(joinPath(prefix, k), v)
		if err != nil {
			return nil, err
		}
		out[k] = val
	}
	return out, nil
}

func fromRaw(path string, v any) (Value, error) {
	switch val := v.(type) {
	case map[string]any:
		return fromRawMap(path, val)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%s: non-string key %v", path, k)
			}
			converted[key] = item
		}
		return fromRawMap(path, converted)
	case []any:
		seq := make(Sequence, len(val))
		for i, item := range val {
			elem, err := fromRaw(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			seq[i] = elem
		}
		return seq, nil
	case []string:
		seq := make(Sequence, len(val))
		for i, item := range val {
			seq[i] = Scalar{V: item}
		}
		return seq, nil
	case Value:
		return val.clone(), nil
	}
	return scalarFromRaw(path, v)
}

func scalarFromRaw(path string, v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, &NullError{Path: path}
	case string, bool, int64, float64, time.Time:
		return Scalar{V: val}, nil
	case int:
		return Scalar{V: int64(val)}, nil
	case int8:
		return Scalar{V: int64(val)}, nil
	case int16:
		return Scalar{V: int64(val)}, nil
	case int32:
		return Scalar{V: int64(val)}, nil
	case uint:
		return Scalar{V: int64(val)}, nil
	case uint8:
		return Scalar{V: int64(val)}, nil
	case uint16:
		return Scalar{V: int64(val)}, nil
	case uint32:
		return Scalar{V: int64(val)}, nil
	case uint64:
		return Scalar{V: int64(val)}, nil
	case float32:
		return Scalar{V: float64(val)}, nil
	default:
		// Local dates and times from TOML are kept as-is.
		return Scalar{V: val}, nil
	}
}

// Equal reports whether two values hold the same tree.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch va := a.(type) {
	case Scalar:
		vb, ok := b.(Scalar)
		return ok && va.V == vb.V
	case Sequence:
		vb, ok := b.(Sequence)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	case Mapping:
		vb, ok := b.(Mapping)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, x := range va {
			y, ok := vb[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	}
	return false
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// Raw converts a single value back to plain Go values.
func Raw(v Value) any {
	if v == nil {
		return nil
	}
	return v.raw()
}

// Clone returns a deep copy of a single value.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}
