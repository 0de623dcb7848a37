package resolve

import (
	"fmt"
	"strings"

	"ber-generator/internal/schema"
)

// DefaultReadStream is the stream a field's read fragment consumes from.
const DefaultReadStream = "&fieldStream"

// Context is what a Template needs to render one field's fragments.
type Context struct {
	Names Naming
	Field *Field
	// Stream is the C expression of the bounded field stream.
	Stream string
}

// NewContext returns a context with the default read stream.
func NewContext(names Naming, f *Field) Context {
	return Context{Names: names, Field: f, Stream: DefaultReadStream}
}

func (c Context) member(suffix string) string {
	return "item->" + c.Field.Name + suffix
}

// Member is one struct member declaration.
type Member struct {
	Type string
	Name string
}

// Template renders the code fragments of one field category. Exactly one
// implementation exists per Category (and per Representation for blobs).
type Template interface {
	// Members lists the struct members holding the field.
	Members(c Context) []Member
	// Length is the contextual size expression of the field.
	Length(c Context) string
	// Write is the expression writing the tagged field to stream s.
	Write(c Context) string
	// Read is the expression reading the field content from c.Stream.
	Read(c Context) string
	// Cleanup is the statement releasing the field, or "".
	Cleanup(c Context) string
}

type scalarTemplate struct{}

func (scalarTemplate) Members(c Context) []Member {
	return []Member{{Type: "UINT32", Name: c.Field.Name}}
}

func (scalarTemplate) Length(c Context) string {
	return fmt.Sprintf("ber_sizeof_contextual_integer(%s)", c.member(""))
}

func (scalarTemplate) Write(c Context) string {
	return fmt.Sprintf("ber_write_contextual_integer(s, %d, %s)", c.Field.Index, c.member(""))
}

func (scalarTemplate) Read(c Context) string {
	return fmt.Sprintf("ber_read_integer(%s, &%s)", c.Stream, c.member(""))
}

func (scalarTemplate) Cleanup(Context) string { return "" }

type blobTemplate struct {
	rep schema.Representation
	// lengthExpr holds the {fieldName} placeholder.
	lengthExpr string
}

func (t blobTemplate) Members(c Context) []Member {
	switch t.rep {
	case schema.RepresentationTranscoded:
		return []Member{{Type: "char*", Name: c.Field.Name}}
	case schema.RepresentationWide:
		return []Member{{Type: "WCHAR*", Name: c.Field.Name}}
	default:
		return []Member{
			{Type: "size_t", Name: c.Field.Name + "Len"},
			{Type: "BYTE*", Name: c.Field.Name},
		}
	}
}

func (t blobTemplate) Length(c Context) string {
	expr := strings.ReplaceAll(t.lengthExpr, schema.FieldNamePlaceholder, c.Field.Name)
	return fmt.Sprintf("ber_sizeof_contextual_octet_string(%s)", expr)
}

func (t blobTemplate) Write(c Context) string {
	switch t.rep {
	case schema.RepresentationTranscoded:
		return fmt.Sprintf("ber_write_contextual_char_to_unicode_octet_string(s, %d, %s)",
			c.Field.Index, c.member(""))
	case schema.RepresentationWide:
		return fmt.Sprintf("ber_write_contextual_unicode_octet_string(s, %d, %s)",
			c.Field.Index, c.member(""))
	default:
		return fmt.Sprintf("ber_write_contextual_octet_string(s, %d, %s, %s)",
			c.Field.Index, c.member(""), c.member("Len"))
	}
}

func (t blobTemplate) Read(c Context) string {
	switch t.rep {
	case schema.RepresentationTranscoded:
		return fmt.Sprintf("ber_read_char_from_unicode_octet_string(%s, &%s)", c.Stream, c.member(""))
	case schema.RepresentationWide:
		return fmt.Sprintf("ber_read_unicode_octet_string(%s, &%s)", c.Stream, c.member(""))
	default:
		return fmt.Sprintf("ber_read_octet_string(%s, &%s, &%s)", c.Stream, c.member(""), c.member("Len"))
	}
}

func (blobTemplate) Cleanup(c Context) string {
	return fmt.Sprintf("free(%s);", c.member(""))
}

type nestedTemplate struct{}

func (nestedTemplate) Members(c Context) []Member {
	return []Member{{Type: c.Names.Type(c.Field.Ref.Name) + "*", Name: c.Field.Name}}
}

func (nestedTemplate) Length(c Context) string {
	return fmt.Sprintf("%s(%s)", c.Names.SizeofContextual(c.Field.Ref.Name), c.member(""))
}

func (nestedTemplate) Write(c Context) string {
	return fmt.Sprintf("%s(s, %d, %s)", c.Names.WriteContextual(c.Field.Ref.Name), c.Field.Index, c.member(""))
}

func (nestedTemplate) Read(c Context) string {
	return fmt.Sprintf("%s(%s, &%s)", c.Names.Read(c.Field.Ref.Name), c.Stream, c.member(""))
}

func (nestedTemplate) Cleanup(c Context) string {
	return fmt.Sprintf("%s(&%s);", c.Names.Free(c.Field.Ref.Name), c.member(""))
}

type arrayTemplate struct{}

func (arrayTemplate) Members(c Context) []Member {
	return []Member{
		{Type: "size_t", Name: c.Field.Name + "Items"},
		{Type: c.Names.Type(c.Field.Ref.Name) + "*", Name: c.Field.Name},
	}
}

func (arrayTemplate) Length(c Context) string {
	return fmt.Sprintf("%s(%s, %s)", c.Names.ArraySizeofContextual(c.Field.Ref.Name),
		c.member(""), c.member("Items"))
}

func (arrayTemplate) Write(c Context) string {
	return fmt.Sprintf("%s(s, %d, %s, %s)", c.Names.ArrayWriteContextual(c.Field.Ref.Name),
		c.Field.Index, c.member(""), c.member("Items"))
}

func (arrayTemplate) Read(c Context) string {
	return fmt.Sprintf("%s(%s, &%s, &%s)", c.Names.ArrayRead(c.Field.Ref.Name),
		c.Stream, c.member(""), c.member("Items"))
}

func (arrayTemplate) Cleanup(c Context) string {
	return fmt.Sprintf("%s(&%s, %s);", c.Names.ArrayFree(c.Field.Ref.Name), c.member(""), c.member("Items"))
}

// templateFor picks the template of a classified field.
func templateFor(f *Field, lengthExprs map[schema.Representation]string) Template {
	switch f.Category {
	case CategoryByteBlob:
		return blobTemplate{rep: f.Representation, lengthExpr: lengthExprs[f.Representation]}
	case CategoryNestedRecord:
		return nestedTemplate{}
	case CategoryArrayOfRecord:
		return arrayTemplate{}
	default:
		return scalarTemplate{}
	}
}
