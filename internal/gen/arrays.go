package gen

import "ber-generator/internal/resolve"

// arrayFuncs prints the functions handling a contiguous buffer of nitems
// records, used by SEQUENCE OF fields.
func (e *emitter) arrayFuncs(r *resolve.Record) {
	n, t := r.Name, e.names.Type(r.Name)

	e.printf("size_t %s(const %s* item, size_t nitems)\n{\n", e.names.ArraySizeofContent(n), t)
	e.printf("\tsize_t i, ret = 0;\n")
	e.printf("\tfor (i = 0; i < nitems; i++, item++)\n")
	e.printf("\t\tret += %s(item);\n\n", e.names.Sizeof(n))
	e.printf("\treturn ret;\n}\n\n")

	e.printf("size_t %s(const %s* item, size_t nitems)\n{\n", e.names.ArraySizeof(n), t)
	e.printf("\treturn ber_sizeof_sequence(%s(item, nitems));\n}\n\n", e.names.ArraySizeofContent(n))

	e.printf("size_t %s(const %s* item, size_t nitems)\n{\n", e.names.ArraySizeofContextual(n), t)
	e.printf("\tsize_t inner = %s(item, nitems);\n", e.names.ArraySizeof(n))
	e.printf("\treturn ber_sizeof_contextual_tag(inner) + inner;\n}\n\n")

	e.arrayFree(r)

	e.printf("size_t %s(wStream* s, const %s* item, size_t nitems)\n{\n", e.names.ArrayWrite(n), t)
	e.printf("\tsize_t i, r, ret;\n")
	e.printf("\tsize_t inner_len = %s(item, nitems);\n\n", e.names.ArraySizeofContent(n))
	e.printf("\tret = ber_write_sequence_tag(s, inner_len);\n\n")
	e.printf("\tfor (i = 0; i < nitems; i++, item++)\n\t{\n")
	e.printf("\t\tr = %s(s, item);\n", e.names.Write(n))
	e.printf("\t\tif (!r)\n\t\t\treturn 0;\n")
	e.printf("\t\tret += r;\n\t}\n\n")
	e.printf("\treturn ret;\n}\n\n")

	e.printf("size_t %s(wStream* s, BYTE tag, const %s* item, size_t nitems)\n{\n",
		e.names.ArrayWriteContextual(n), t)
	e.printf("\tsize_t ret;\n")
	e.printf("\tsize_t inner = %s(item, nitems);\n\n", e.names.ArraySizeof(n))
	e.printf("\tret = ber_write_contextual_tag(s, tag, inner, TRUE);\n")
	e.printf("\tif (!%s(s, item, nitems))\n\t\treturn 0;\n", e.names.ArrayWrite(n))
	e.printf("\treturn ret + inner;\n}\n\n")

	e.arrayRead(r)
}

// arrayFree releases the members of every element, then the buffer.
func (e *emitter) arrayFree(r *resolve.Record) {
	t := e.names.Type(r.Name)

	e.printf("void %s(%s** pitems, size_t nitems)\n{\n", e.names.ArrayFree(r.Name), t)
	e.printf("\t%s* items;\n", t)
	e.printf("\tsize_t i;\n\n")
	e.printf("\tWINPR_ASSERT(pitems);\n")
	e.printf("\titems = *pitems;\n")
	e.printf("\tif (!items)\n\t\treturn;\n\n")

	var cleanups []string

	for _, f := range r.Fields {
		if c := f.Template.Cleanup(e.context(f)); c != "" {
			cleanups = append(cleanups, c)
		}
	}

	if len(cleanups) > 0 {
		e.printf("\tfor (i = 0; i < nitems; i++)\n\t{\n")
		e.printf("\t\t%s* item = &items[i];\n\n", t)

		for _, c := range cleanups {
			e.printf("\t\t%s\n", c)
		}

		e.printf("\t}\n\n")
	} else {
		e.printf("\tWINPR_UNUSED(i);\n")
		e.printf("\tWINPR_UNUSED(nitems);\n")
	}

	e.printf("\tfree(items);\n")
	e.printf("\t*pitems = NULL;\n}\n\n")
}

// arrayRead grows the buffer one element at a time; any failure releases
// every element read so far.
func (e *emitter) arrayRead(r *resolve.Record) {
	n, t := r.Name, e.names.Type(r.Name)

	e.printf("BOOL %s(wStream* s, %s** pitems, size_t* nitems)\n{\n", e.names.ArrayRead(n), t)
	e.printf("\tsize_t subLen;\n")
	e.printf("\twStream subStream;\n")
	e.printf("\t%s* retItems = NULL;\n", t)
	e.printf("\tsize_t ret = 0;\n\n")
	e.printf("\tif (!ber_read_sequence_tag(s, &subLen) || !Stream_CheckAndLogRequiredLength(TAG, s, subLen))\n")
	e.printf("\t\treturn FALSE;\n\n")
	e.printf("\tStream_StaticInit(&subStream, Stream_Pointer(s), subLen);\n")
	e.printf("\tStream_Seek(s, subLen);\n")
	e.printf("\twhile (Stream_GetRemainingLength(&subStream))\n\t{\n")
	e.printf("\t\t%s* item;\n", t)
	e.printf("\t\t%s* tmpRet;\n\n", t)
	e.printf("\t\tif (!%s(&subStream, &item))\n\t\t{\n", e.names.Read(n))
	e.printf("\t\t\t%s(&retItems, ret);\n", e.names.ArrayFree(n))
	e.printf("\t\t\treturn FALSE;\n\t\t}\n\n")
	e.printf("\t\ttmpRet = realloc(retItems, (ret + 1) * sizeof(%s));\n", t)
	e.printf("\t\tif (!tmpRet)\n\t\t{\n")
	e.printf("\t\t\t%s(&item);\n", e.names.Free(n))
	e.printf("\t\t\t%s(&retItems, ret);\n", e.names.ArrayFree(n))
	e.printf("\t\t\treturn FALSE;\n\t\t}\n")
	e.printf("\t\tretItems = tmpRet;\n\n")
	e.printf("\t\tmemcpy(&retItems[ret], item, sizeof(*item));\n")
	e.printf("\t\tfree(item);\n")
	e.printf("\t\tret++;\n\t}\n\n")
	e.printf("\t*pitems = retItems;\n")
	e.printf("\t*nitems = ret;\n")
	e.printf("\treturn TRUE;\n}\n\n")
}
