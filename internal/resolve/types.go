package resolve

import (
	"slices"

	"ber-generator/internal/diagnostic"
	"ber-generator/internal/schema"
)

// Schema is the resolved model consumed by the emitter.
type Schema struct {
	// Prefix is prepended to every generated function name.
	Prefix string
	// Records in registry order.
	Records []*Record
	// LengthExprs holds the blob payload length expression per representation.
	LengthExprs map[schema.Representation]string
	// Warnings carries the parser warnings followed by the resolver's own.
	Warnings []diagnostic.Diagnostic

	index map[string]*Record
}

// Record returns the named record, or nil.
func (s *Schema) Record(name string) *Record {
	return s.index[name]
}

// WithPrefix returns a shallow copy of s whose generated names use prefix.
// Records are shared with s.
func (s *Schema) WithPrefix(prefix string) *Schema {
	c := *s
	c.Prefix = prefix

	return &c
}

// Naming returns the identifier scheme for this schema.
func (s *Schema) Naming() Naming {
	return Naming{Prefix: s.Prefix}
}

// Record is a resolved record type.
type Record struct {
	Name   string
	Fields []*Field
	// ArrayElement is set when some field is a SEQUENCE OF this record.
	ArrayElement bool
	Line         int
}

// Field is a resolved, classified field.
type Field struct {
	Name         string
	Index        int
	Optional     bool
	DeclaredType string
	ElementType  string
	Category     Category
	// Representation is meaningful for CategoryByteBlob only.
	Representation schema.Representation
	// Ref is the nested record, or the element record of an array.
	Ref      *Record
	Options  []schema.FieldOption
	Line     int
	Template Template
}

// Field returns the named field, or nil.
func (r *Record) Field(name string) *Field {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

func (f *Field) hasOption(o schema.FieldOption) bool {
	return slices.Contains(f.Options, o)
}
