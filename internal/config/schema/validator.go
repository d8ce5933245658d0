package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tkutils/toolkit/internal/config/layer"
)

// SourceLookup names the document that supplied a dotted path. It is used
// to annotate errors and may return "" when the source is unknown.
type SourceLookup func(path string) string

// Validator validates configuration documents against a schema. It stops
// at the first problem, visiting keys in sorted order so the reported
// error is deterministic. At each object it reports unknown keys first,
// then missing required properties, then invalid values.
type Validator struct {
	schema   *Schema
	sourceOf SourceLookup
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema *Schema) *Validator {
	return &Validator{schema: schema}
}

// WithSourceLookup sets the function used to attribute errors to a source.
func (v *Validator) WithSourceLookup(fn SourceLookup) *Validator {
	v.sourceOf = fn
	return v
}

// Validate validates a document against the schema.
func (v *Validator) Validate(data layer.Mapping) error {
	if v.schema == nil {
		return nil
	}
	return v.validateValue("", data, v.schema)
}

// ValidatePath validates a single value at a given path.
func (v *Validator) ValidatePath(path string, value layer.Value) error {
	if v.schema == nil {
		return nil
	}

	propSchema := v.schema.GetProperty(path)
	if propSchema == nil {
		return &UnknownFieldError{Path: path, Source: v.source(path)}
	}
	return v.validateValue(path, value, propSchema)
}

func (v *Validator) source(path string) string {
	if v.sourceOf == nil {
		return ""
	}
	return v.sourceOf(path)
}

func (v *Validator) typeError(path, expected string, value layer.Value) error {
	return &TypeValidationError{
		Path:     path,
		Expected: expected,
		Value:    layer.Raw(value),
		Source:   v.source(path),
	}
}

// validateValue validates a value against a schema.
func (v *Validator) validateValue(path string, value layer.Value, schema *Schema) error {
	switch schema.Type {
	case TypeNameObject:
		obj, ok := value.(layer.Mapping)
		if !ok {
			return v.typeError(path, schema.ExpectedType(), value)
		}
		return v.validateObject(path, obj, schema)
	case TypeNameArray:
		seq, ok := value.(layer.Sequence)
		if !ok {
			return v.typeError(path, schema.ExpectedType(), value)
		}
		return v.validateArray(path, seq, schema)
	}

	scalar, ok := value.(layer.Scalar)
	if !ok || !matchesType(scalar.V, schema.Type) {
		return v.typeError(path, schema.Type, value)
	}

	switch schema.Type {
	case TypeNameString:
		if err := v.validateString(path, scalar.V.(string), schema, value); err != nil {
			return err
		}
	case TypeNameInteger, TypeNameNumber:
		if err := v.validateNumber(path, scalar.V, schema, value); err != nil {
			return err
		}
	}

	if len(schema.Enum) > 0 && !inEnum(scalar.V, schema.Enum) {
		return v.typeError(path, fmt.Sprintf("one of %v", schema.Enum), value)
	}
	return nil
}

func (v *Validator) validateObject(path string, obj layer.Mapping, schema *Schema) error {
	keys := obj.Keys()

	for _, key := range keys {
		if _, declared := schema.Properties[key]; declared || schema.AdditionalProperties != nil {
			continue
		}
		propPath := joinPath(path, key)
		return &UnknownFieldError{Path: propPath, Source: v.source(propPath)}
	}

	for _, req := range schema.Required {
		if _, exists := obj[req]; !exists {
			reqPath := joinPath(path, req)
			return &MissingFieldError{Path: reqPath, Source: v.source(reqPath)}
		}
	}

	for _, key := range keys {
		propSchema, ok := schema.Properties[key]
		if !ok {
			propSchema = schema.AdditionalProperties
		}
		if err := v.validateValue(joinPath(path, key), obj[key], propSchema); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateArray(path string, seq layer.Sequence, schema *Schema) error {
	if schema.Items == nil {
		return nil
	}
	for i, item := range seq {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		if err := v.validateValue(itemPath, item, schema.Items); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateString(path, s string, schema *Schema, value layer.Value) error {
	if schema.MinLength != nil && len(s) < *schema.MinLength {
		return v.typeError(path, fmt.Sprintf("string of at least %d characters", *schema.MinLength), value)
	}

	switch schema.Format {
	case FormatColor:
		if s != "" && !isValidColor(s) {
			return v.typeError(path, "colour (hex, ANSI code or name)", value)
		}
	case FormatURI:
		if s != "" && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") &&
			!strings.HasPrefix(s, "file://") {
			return v.typeError(path, "URL", value)
		}
	}
	return nil
}

func (v *Validator) validateNumber(path string, n any, schema *Schema, value layer.Value) error {
	f := toFloat64(n)
	if schema.Minimum != nil && f < *schema.Minimum {
		return v.typeError(path, rangeText(schema), value)
	}
	if schema.Maximum != nil && f > *schema.Maximum {
		return v.typeError(path, rangeText(schema), value)
	}
	return nil
}

// matchesType checks a scalar against a type name. Integers must be
// integers: a float is never accepted where an integer is declared.
func matchesType(value any, typ string) bool {
	switch typ {
	case TypeNameString:
		_, ok := value.(string)
		return ok
	case TypeNameInteger:
		_, ok := value.(int64)
		return ok
	case TypeNameNumber:
		switch value.(type) {
		case int64, float64:
			return true
		}
		return false
	case TypeNameBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}

// ExpectedType names the type s accepts as used in TypeValidationError.
func (s *Schema) ExpectedType() string {
	switch s.Type {
	case TypeNameObject:
		return "table"
	case TypeNameArray:
		if s.Items != nil && s.Items.Type != "" {
			return "array of " + s.Items.Type
		}
		return TypeNameArray
	}
	return s.Type
}

func rangeText(schema *Schema) string {
	min, max := schema.Minimum, schema.Maximum
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s between %v and %v", schema.Type, *min, *max)
	case min != nil:
		return fmt.Sprintf("%s >= %v", schema.Type, *min)
	case max != nil:
		return fmt.Sprintf("%s <= %v", schema.Type, *max)
	default:
		return schema.Type
	}
}

func inEnum(value any, allowed []any) bool {
	for _, a := range allowed {
		if valuesEqual(value, a) {
			return true
		}
	}
	return false
}

func toFloat64(v any) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	default:
		return false
	}
}

func valuesEqual(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		return toFloat64(a) == toFloat64(b)
	}
	return a == b
}

func isValidColor(s string) bool {
	if s[0] == '#' {
		s = s[1:]
		if len(s) != 3 && len(s) != 6 {
			return false
		}
		for _, c := range s {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
				return false
			}
		}
		return true
	}
	// ANSI 256 palette index
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 0 && n <= 255
	}
	namedColors := map[string]bool{
		"black": true, "white": true, "red": true, "green": true, "blue": true,
		"yellow": true, "cyan": true, "magenta": true, "gray": true, "grey": true,
	}
	return namedColors[strings.ToLower(s)]
}
