package resolve

// Naming derives the C identifiers generated for a record.
type Naming struct {
	Prefix string
}

// Type is the C struct typedef name.
func (Naming) Type(record string) string { return record + "_t" }

// Tag is the struct tag used by the forward typedef.
func (Naming) Tag(record string) string { return record + "_s" }

func (n Naming) SizeofContent(record string) string {
	return "ber_sizeof_" + n.Prefix + record + "_content"
}

func (n Naming) Sizeof(record string) string {
	return "ber_sizeof_" + n.Prefix + record
}

func (n Naming) SizeofContextual(record string) string {
	return "ber_sizeof_contextual_" + n.Prefix + record
}

func (n Naming) Free(record string) string {
	return n.Prefix + record + "_free"
}

func (n Naming) Write(record string) string {
	return "ber_write_" + n.Prefix + record
}

func (n Naming) WriteContextual(record string) string {
	return "ber_write_contextual_" + n.Prefix + record
}

func (n Naming) Read(record string) string {
	return "ber_read_" + n.Prefix + record
}

func (n Naming) ArraySizeofContent(record string) string {
	return "ber_sizeof_" + n.Prefix + record + "_array_content"
}

func (n Naming) ArraySizeof(record string) string {
	return "ber_sizeof_" + n.Prefix + record + "_array"
}

func (n Naming) ArraySizeofContextual(record string) string {
	return "ber_sizeof_contextual_" + n.Prefix + record + "_array"
}

func (n Naming) ArrayFree(record string) string {
	return n.Prefix + record + "_array_free"
}

func (n Naming) ArrayWrite(record string) string {
	return "ber_write_" + n.Prefix + record + "_array"
}

func (n Naming) ArrayWriteContextual(record string) string {
	return "ber_write_contextual_" + n.Prefix + record + "_array"
}

func (n Naming) ArrayRead(record string) string {
	return "ber_read_" + n.Prefix + record + "_array"
}
