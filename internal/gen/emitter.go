package gen

import (
	"bytes"
	"fmt"

	"ber-generator/internal/resolve"
)

// emitter prints C text for one artifact.
type emitter struct {
	buf   bytes.Buffer
	names resolve.Naming
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) context(f *resolve.Field) resolve.Context {
	return resolve.NewContext(e.names, f)
}

// fieldComment describes a field as declared: "[1] cspData (TSCspDataDetail) OPTIONAL".
func fieldComment(f *resolve.Field) string {
	typ := f.DeclaredType
	if f.Category == resolve.CategoryArrayOfRecord {
		typ += " " + f.ElementType
	}

	s := fmt.Sprintf("[%d] %s (%s)", f.Index, f.Name, typ)
	if f.Optional {
		s += " OPTIONAL"
	}

	return s
}

// declarations prints forward typedefs, struct definitions and prototypes.
func (e *emitter) declarations(s *resolve.Schema) {
	for _, r := range s.Records {
		e.printf("typedef struct %s %s;\n", e.names.Tag(r.Name), e.names.Type(r.Name))
	}

	e.printf("\n")

	for _, r := range s.Records {
		e.structDef(r)
	}

	for _, r := range s.Records {
		e.prototypes(r)
	}
}

func (e *emitter) structDef(r *resolve.Record) {
	e.printf("struct %s\n{\n", e.names.Tag(r.Name))

	for _, f := range r.Fields {
		for _, m := range f.Template.Members(e.context(f)) {
			e.printf("\t%s %s;\n", m.Type, m.Name)
		}
	}

	e.printf("};\n\n")
}

func (e *emitter) prototypes(r *resolve.Record) {
	n, t := r.Name, e.names.Type(r.Name)

	e.printf("size_t %s(const %s* item);\n", e.names.SizeofContent(n), t)
	e.printf("size_t %s(const %s* item);\n", e.names.Sizeof(n), t)
	e.printf("size_t %s(const %s* item);\n", e.names.SizeofContextual(n), t)
	e.printf("void %s(%s** pitem);\n", e.names.Free(n), t)
	e.printf("size_t %s(wStream* s, const %s* item);\n", e.names.Write(n), t)
	e.printf("size_t %s(wStream* s, BYTE tag, const %s* item);\n", e.names.WriteContextual(n), t)
	e.printf("BOOL %s(wStream* s, %s** pret);\n", e.names.Read(n), t)

	if r.ArrayElement {
		e.printf("size_t %s(const %s* item, size_t nitems);\n", e.names.ArraySizeofContent(n), t)
		e.printf("size_t %s(const %s* item, size_t nitems);\n", e.names.ArraySizeof(n), t)
		e.printf("size_t %s(const %s* item, size_t nitems);\n", e.names.ArraySizeofContextual(n), t)
		e.printf("void %s(%s** pitems, size_t nitems);\n", e.names.ArrayFree(n), t)
		e.printf("size_t %s(wStream* s, const %s* item, size_t nitems);\n", e.names.ArrayWrite(n), t)
		e.printf("size_t %s(wStream* s, BYTE tag, const %s* item, size_t nitems);\n",
			e.names.ArrayWriteContextual(n), t)
		e.printf("BOOL %s(wStream* s, %s** pitems, size_t* nitems);\n", e.names.ArrayRead(n), t)
	}

	e.printf("\n")
}

// implementations prints every function body, records in registry order.
func (e *emitter) implementations(s *resolve.Schema) {
	for _, r := range s.Records {
		e.sizeofFuncs(r)
		e.freeFunc(r)
		e.writeFuncs(r)
		e.readFunc(r)

		if r.ArrayElement {
			e.arrayFuncs(r)
		}
	}
}
