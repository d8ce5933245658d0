package schema

import "sort"

// Type names.
const (
	TypeNameString  = "string"
	TypeNameNumber  = "number"
	TypeNameInteger = "integer"
	TypeNameBoolean = "boolean"
	TypeNameArray   = "array"
	TypeNameObject  = "object"
)

// Format names.
const (
	FormatPath  = "path"
	FormatColor = "color"
	FormatURI   = "uri"
)

// Builder provides a fluent API for constructing schemas.
type Builder struct {
	schema *Schema
}

// NewBuilder creates a new schema builder.
func NewBuilder() *Builder {
	return &Builder{
		schema: &Schema{},
	}
}

// Build returns the constructed schema.
func (b *Builder) Build() *Schema {
	return b.schema
}

// Title sets the schema title.
func (b *Builder) Title(title string) *Builder {
	b.schema.Title = title
	return b
}

// Description sets the schema description.
func (b *Builder) Description(desc string) *Builder {
	b.schema.Description = desc
	return b
}

// Type sets the schema type.
func (b *Builder) Type(typ string) *Builder {
	b.schema.Type = typ
	return b
}

// Enum sets allowed values.
func (b *Builder) Enum(values ...any) *Builder {
	b.schema.Enum = values
	return b
}

// Minimum sets the minimum value for numbers.
func (b *Builder) Minimum(min float64) *Builder {
	b.schema.Minimum = &min
	return b
}

// Maximum sets the maximum value for numbers.
func (b *Builder) Maximum(max float64) *Builder {
	b.schema.Maximum = &max
	return b
}

// MinLength sets the minimum string length.
func (b *Builder) MinLength(n int) *Builder {
	b.schema.MinLength = &n
	return b
}

// Format sets the format hint.
func (b *Builder) Format(format string) *Builder {
	b.schema.Format = format
	return b
}

// Items sets the array item schema.
func (b *Builder) Items(items *Schema) *Builder {
	b.schema.Items = items
	return b
}

// Property adds a required property to an object schema.
func (b *Builder) Property(name string, prop *Schema) *Builder {
	if b.schema.Properties == nil {
		b.schema.Properties = make(map[string]*Schema)
	}
	b.schema.Properties[name] = prop
	if !b.schema.IsRequired(name) {
		b.schema.Required = append(b.schema.Required, name)
		sort.Strings(b.schema.Required)
	}
	return b
}

// AdditionalProperties sets the schema for undeclared object keys.
func (b *Builder) AdditionalProperties(prop *Schema) *Builder {
	b.schema.AdditionalProperties = prop
	return b
}

// String returns a plain string schema.
func String() *Schema { return &Schema{Type: TypeNameString} }

// Integer returns a plain integer schema.
func Integer() *Schema { return &Schema{Type: TypeNameInteger} }

// Boolean returns a boolean schema.
func Boolean() *Schema { return &Schema{Type: TypeNameBoolean} }

// Path returns a string schema marked as a filesystem path.
func Path() *Schema { return &Schema{Type: TypeNameString, Format: FormatPath} }

// ArrayOf returns an array schema with the given item schema.
func ArrayOf(items *Schema) *Schema { return &Schema{Type: TypeNameArray, Items: items} }

// Object returns an object schema where every listed property is required
// and no other key is allowed.
func Object(props map[string]*Schema) *Schema {
	b := NewBuilder().Type(TypeNameObject)
	for name, prop := range props {
		b.Property(name, prop)
	}
	return b.Build()
}

// MapOf returns an object schema accepting any key whose value matches
// values.
func MapOf(values *Schema) *Schema {
	return NewBuilder().Type(TypeNameObject).AdditionalProperties(values).Build()
}
