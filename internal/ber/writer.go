package ber

// Writer appends encoded values to a buffer. A limited writer fails with
// ErrShortBuffer instead of growing past its capacity, like a fixed wStream.
type Writer struct {
	buf   []byte
	limit int
}

// NewWriter returns a writer without a capacity limit.
func NewWriter() *Writer {
	return &Writer{limit: -1}
}

// NewLimitedWriter returns a writer holding at most limit bytes.
func NewLimitedWriter(limit int) *Writer {
	return &Writer{buf: make([]byte, 0, limit), limit: limit}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) write(p ...byte) error {
	if w.limit >= 0 && len(w.buf)+len(p) > w.limit {
		return ErrShortBuffer
	}

	w.buf = append(w.buf, p...)

	return nil
}

// WriteLength writes a definite length prefix.
func (w *Writer) WriteLength(n int) (int, error) {
	size := SizeofLength(n)
	if size == 1 {
		return 1, w.write(byte(n))
	}

	p := make([]byte, size)
	p[0] = 0x80 | byte(size-1)

	for i := size - 1; i > 0; i-- {
		p[i] = byte(n)
		n >>= 8
	}

	return size, w.write(p...)
}

func (w *Writer) writeHeader(tag byte, n int) (int, error) {
	if err := w.write(tag); err != nil {
		return 0, err
	}

	l, err := w.WriteLength(n)
	if err != nil {
		return 0, err
	}

	return 1 + l, nil
}

// WriteSequenceTag writes a sequence header announcing n content bytes.
func (w *Writer) WriteSequenceTag(n int) (int, error) {
	return w.writeHeader(TagSequence, n)
}

// WriteContextualTag writes a context tag header announcing n content bytes.
func (w *Writer) WriteContextualTag(tag byte, n int, constructed bool) (int, error) {
	return w.writeHeader(ContextTag(tag, constructed), n)
}

// WriteInteger writes an INTEGER.
func (w *Writer) WriteInteger(v uint32) (int, error) {
	n := integerContentLen(v)
	if _, err := w.writeHeader(TagInteger, n); err != nil {
		return 0, err
	}

	p := make([]byte, n)
	x := v

	for i := n - 1; i >= 0; i-- {
		p[i] = byte(x)
		x >>= 8
	}

	if err := w.write(p...); err != nil {
		return 0, err
	}

	return SizeofInteger(v), nil
}

// WriteContextualInteger writes an INTEGER wrapped in context tag tag.
func (w *Writer) WriteContextualInteger(tag byte, v uint32) (int, error) {
	inner := SizeofInteger(v)

	h, err := w.WriteContextualTag(tag, inner, true)
	if err != nil {
		return 0, err
	}

	if _, err := w.WriteInteger(v); err != nil {
		return 0, err
	}

	return h + inner, nil
}

// WriteOctetString writes an OCTET STRING.
func (w *Writer) WriteOctetString(b []byte) (int, error) {
	h, err := w.writeHeader(TagOctetString, len(b))
	if err != nil {
		return 0, err
	}

	if err := w.write(b...); err != nil {
		return 0, err
	}

	return h + len(b), nil
}

// WriteContextualOctetString writes an OCTET STRING wrapped in context tag tag.
func (w *Writer) WriteContextualOctetString(tag byte, b []byte) (int, error) {
	inner := SizeofOctetString(len(b))

	h, err := w.WriteContextualTag(tag, inner, true)
	if err != nil {
		return 0, err
	}

	if _, err := w.WriteOctetString(b); err != nil {
		return 0, err
	}

	return h + inner, nil
}

// WriteContextualCharToUnicodeOctetString writes a narrow string as a UTF-16LE
// OCTET STRING wrapped in context tag tag.
func (w *Writer) WriteContextualCharToUnicodeOctetString(tag byte, s string) (int, error) {
	payload, err := EncodeUTF16(s)
	if err != nil {
		return 0, err
	}

	return w.WriteContextualOctetString(tag, payload)
}

// WriteContextualUnicodeOctetString writes a wide string as a UTF-16LE OCTET
// STRING wrapped in context tag tag.
func (w *Writer) WriteContextualUnicodeOctetString(tag byte, s []uint16) (int, error) {
	return w.WriteContextualOctetString(tag, WideBytes(s))
}
