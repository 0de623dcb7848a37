package schema

import (
	"slices"

	"ber-generator/internal/diagnostic"
)

// Declared type keywords understood by the resolver.
const (
	TypeInteger     = "INTEGER"
	TypeOctetString = "OCTET STRING"
	TypeSequenceOf  = "SEQUENCE OF"
)

// MaxContextTag is the highest field index that fits the low-tag-number
// form of a context tag byte.
const MaxContextTag = 30

// FieldOption is a per-field annotation set from the options block.
type FieldOption string

const (
	// OptionCharToUnicode keeps the blob as a narrow string in memory and
	// transcodes it to UTF-16 on the wire.
	OptionCharToUnicode FieldOption = "charInMemorySerializeToUnicode"
	// OptionUnicode keeps the blob as a wide string in memory.
	OptionUnicode FieldOption = "unicode"
)

// KnownFieldOptions lists every accepted field option.
var KnownFieldOptions = []FieldOption{OptionCharToUnicode, OptionUnicode}

// Representation selects how an OCTET STRING field is held in memory.
type Representation string

const (
	// RepresentationBytes is a byte buffer with an explicit length member.
	RepresentationBytes Representation = "bytes"
	// RepresentationWide is a NUL terminated wide string.
	RepresentationWide Representation = "unicode"
	// RepresentationTranscoded is a NUL terminated narrow string sent as UTF-16.
	RepresentationTranscoded Representation = "charInMemorySerializeToUnicode"
)

// KnownRepresentations lists every blob representation in a stable order.
var KnownRepresentations = []Representation{
	RepresentationBytes,
	RepresentationWide,
	RepresentationTranscoded,
}

// FieldNamePlaceholder is substituted with the field name in length expressions.
const FieldNamePlaceholder = "{fieldName}"

// Options is the global options block.
type Options struct {
	// Prefix is prepended to every generated function name.
	Prefix string
	// OctetStringLen maps a blob representation to the C expression giving
	// its payload length.
	OctetStringLen map[Representation]string
}

// DefaultOptions returns the options in effect when the schema sets none.
func DefaultOptions() Options {
	return Options{
		Prefix: "",
		OctetStringLen: map[Representation]string{
			RepresentationBytes:      "item->" + FieldNamePlaceholder + "Len",
			RepresentationWide:       "_wcslen(item->" + FieldNamePlaceholder + ") * 2",
			RepresentationTranscoded: "strlen(item->" + FieldNamePlaceholder + ") * 2",
		},
	}
}

// Field is one member of a record.
type Field struct {
	// Name is unique within the record.
	Name string
	// Index is the context tag number used on the wire.
	Index int
	// Optional fields may be absent on the wire.
	Optional bool
	// Type is the declared type: a keyword or a record name.
	Type string
	// ElementType is set only when Type is TypeSequenceOf.
	ElementType string
	// Options are the field options attached by the options block.
	Options []FieldOption
	// Line is the schema line declaring the field.
	Line int
}

// HasOption reports whether the option is attached to the field.
func (f *Field) HasOption(o FieldOption) bool {
	return slices.Contains(f.Options, o)
}

// Record is a named, ordered list of fields.
type Record struct {
	Name   string
	Fields []*Field
	// Line is the schema line of the record header.
	Line int
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

// FieldNames returns field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Schema is the parsed registry of records plus the global options.
// It is treated as immutable once Parse returns.
type Schema struct {
	// Records in the order their definitions were closed.
	Records []*Record
	Options Options
	// Warnings are the non-fatal diagnostics raised while parsing.
	Warnings []diagnostic.Diagnostic

	index map[string]*Record
}

func newSchema() *Schema {
	return &Schema{
		Options: DefaultOptions(),
		index:   make(map[string]*Record),
	}
}

// Record returns the named record, or nil.
func (s *Schema) Record(name string) *Record {
	return s.index[name]
}

// RecordNames returns record names in registry order.
func (s *Schema) RecordNames() []string {
	names := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		names = append(names, r.Name)
	}

	return names
}

func (s *Schema) add(r *Record) {
	s.Records = append(s.Records, r)
	s.index[r.Name] = r
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	c := newSchema()
	c.Options.Prefix = s.Options.Prefix
	c.Options.OctetStringLen = make(map[Representation]string, len(s.Options.OctetStringLen))

	for k, v := range s.Options.OctetStringLen {
		c.Options.OctetStringLen[k] = v
	}

	for _, r := range s.Records {
		nr := &Record{Name: r.Name, Line: r.Line, Fields: make([]*Field, 0, len(r.Fields))}
		for _, f := range r.Fields {
			nf := *f
			nf.Options = slices.Clone(f.Options)
			nr.Fields = append(nr.Fields, &nf)
		}

		c.add(nr)
	}

	c.Warnings = slices.Clone(s.Warnings)

	return c
}
