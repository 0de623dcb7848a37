package gen

import "ber-generator/internal/resolve"

func (e *emitter) sizeofFuncs(r *resolve.Record) {
	n, t := r.Name, e.names.Type(r.Name)

	e.printf("size_t %s(const %s* item)\n{\n", e.names.SizeofContent(n), t)
	e.printf("\tsize_t ret = 0;\n\n")

	for _, f := range r.Fields {
		e.printf("\t/* %s */\n", fieldComment(f))
		e.guarded(f, "ret += %s;\n", f.Template.Length(e.context(f)))
		e.printf("\n")
	}

	e.printf("\treturn ret;\n}\n\n")

	e.printf("size_t %s(const %s* item)\n{\n", e.names.Sizeof(n), t)
	e.printf("\tsize_t ret = %s(item);\n", e.names.SizeofContent(n))
	e.printf("\treturn ber_sizeof_sequence(ret);\n}\n\n")

	e.printf("size_t %s(const %s* item)\n{\n", e.names.SizeofContextual(n), t)
	e.printf("\tsize_t innerSz = %s(item);\n", e.names.Sizeof(n))
	e.printf("\treturn ber_sizeof_contextual_tag(innerSz) + innerSz;\n}\n\n")
}

// guarded prints one statement at one indent level, wrapped in a presence
// test when the field is optional.
func (e *emitter) guarded(f *resolve.Field, format string, args ...any) {
	if !f.Optional {
		e.printf("\t"+format, args...)
		return
	}

	e.printf("\tif (item->%s)\n\t{\n", f.Name)
	e.printf("\t\t"+format, args...)
	e.printf("\t}\n")
}

func (e *emitter) freeFunc(r *resolve.Record) {
	t := e.names.Type(r.Name)

	e.printf("void %s(%s** pitem)\n{\n", e.names.Free(r.Name), t)
	e.printf("\t%s* item;\n\n", t)
	e.printf("\tWINPR_ASSERT(pitem);\n")
	e.printf("\titem = *pitem;\n")
	e.printf("\tif (!item)\n\t\treturn;\n\n")

	for _, f := range r.Fields {
		if c := f.Template.Cleanup(e.context(f)); c != "" {
			e.printf("\t%s\n", c)
		}
	}

	e.printf("\tfree(item);\n")
	e.printf("\t*pitem = NULL;\n}\n\n")
}

func (e *emitter) writeFuncs(r *resolve.Record) {
	n, t := r.Name, e.names.Type(r.Name)

	e.printf("size_t %s(wStream* s, const %s* item)\n{\n", e.names.Write(n), t)
	e.printf("\tsize_t content_size = %s(item);\n", e.names.SizeofContent(n))
	e.printf("\tsize_t ret = 0;\n\n")
	e.printf("\tret = ber_write_sequence_tag(s, content_size);\n")

	for _, f := range r.Fields {
		e.printf("\t/* %s */\n", fieldComment(f))

		write := f.Template.Write(e.context(f))
		if f.Optional {
			e.printf("\tif (item->%s)\n\t{\n", f.Name)
			e.printf("\t\tif (!%s)\n\t\t\treturn 0;\n", write)
			e.printf("\t}\n\n")
		} else {
			e.printf("\tif (!%s)\n\t\treturn 0;\n\n", write)
		}
	}

	e.printf("\treturn ret + content_size;\n}\n\n")

	e.printf("size_t %s(wStream* s, BYTE tag, const %s* item)\n{\n", e.names.WriteContextual(n), t)
	e.printf("\tsize_t ret;\n")
	e.printf("\tsize_t inner = %s(item);\n\n", e.names.Sizeof(n))
	e.printf("\tret = ber_write_contextual_tag(s, tag, inner, TRUE);\n")
	e.printf("\tif (!%s(s, item))\n\t\treturn 0;\n", e.names.Write(n))
	e.printf("\treturn ret + inner;\n}\n\n")
}

func (e *emitter) readFunc(r *resolve.Record) {
	t := e.names.Type(r.Name)

	e.printf("BOOL %s(wStream* s, %s** pret)\n{\n", e.names.Read(r.Name), t)
	e.printf("\twStream seqstream;\n")
	e.printf("\tsize_t seqLength;\n")
	e.printf("\tsize_t inner_size;\n")
	e.printf("\twStream fieldStream;\n")
	e.printf("\t%s* item;\n", t)
	e.printf("\tBOOL ret;\n\n")

	if len(r.Fields) == 0 {
		e.printf("\tWINPR_UNUSED(ret);\n")
		e.printf("\tWINPR_UNUSED(inner_size);\n")
		e.printf("\tWINPR_UNUSED(fieldStream);\n\n")
	}

	e.printf("\tif (!ber_read_sequence_tag(s, &seqLength) ||\n")
	e.printf("\t    !Stream_CheckAndLogRequiredLength(TAG, s, seqLength))\n")
	e.printf("\t\treturn FALSE;\n")
	e.printf("\tStream_StaticInit(&seqstream, Stream_Pointer(s), seqLength);\n")
	e.printf("\tStream_Seek(s, seqLength);\n\n")

	e.printf("\titem = calloc(1, sizeof(*item));\n")
	e.printf("\tif (!item)\n\t\treturn FALSE;\n\n")

	for _, f := range r.Fields {
		e.readField(f)
	}

	e.printf("\t*pret = item;\n")
	e.printf("\treturn TRUE;\n\n")

	for _, step := range r.Teardown() {
		e.printf("%s:\n", step.Label)

		if step.Release == nil {
			continue
		}

		if c := step.Release.Template.Cleanup(e.context(step.Release)); c != "" {
			e.printf("\t%s\n", c)
		}
	}

	e.printf("\tfree(item);\n")
	e.printf("\treturn FALSE;\n}\n\n")
}

// readField prints the tag probe, the bounded field stream and the content
// read of one field. A missing optional field leaves the stream untouched.
func (e *emitter) readField(f *resolve.Field) {
	label := resolve.FailLabel(f)
	read := f.Template.Read(e.context(f))

	e.printf("\t/* %s */\n", fieldComment(f))
	e.printf("\tret = ber_read_contextual_tag(&seqstream, %d, &inner_size, TRUE);\n", f.Index)

	indent := "\t"

	if f.Optional {
		e.printf("\tif (ret)\n\t{\n")
		e.printf("\t\tif (!Stream_CheckAndLogRequiredLength(TAG, &seqstream, inner_size))\n")
		e.printf("\t\t\tgoto %s;\n", label)

		indent = "\t\t"
	} else {
		e.printf("\tif (!ret || !Stream_CheckAndLogRequiredLength(TAG, &seqstream, inner_size))\n")
		e.printf("\t\tgoto %s;\n", label)
	}

	e.printf("%sStream_StaticInit(&fieldStream, Stream_Pointer(&seqstream), inner_size);\n", indent)
	e.printf("%sStream_Seek(&seqstream, inner_size);\n\n", indent)
	e.printf("%sret = %s;\n", indent, read)
	e.printf("%sif (!ret)\n%s\tgoto %s;\n", indent, indent, label)

	if f.Optional {
		e.printf("\t}\n")
	}

	e.printf("\n")
}
