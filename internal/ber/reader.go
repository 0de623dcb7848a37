package ber

import "fmt"

// Reader decodes values from a bounded view of a buffer.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{data: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// CheckLength fails unless at least n bytes remain.
func (r *Reader) CheckLength(n int) error {
	if n < 0 || r.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, r.Remaining())
	}

	return nil
}

// Sub returns a reader over the next n bytes and advances past them.
func (r *Reader) Sub(n int) (*Reader, error) {
	if err := r.CheckLength(n); err != nil {
		return nil, err
	}

	sub := &Reader{data: r.data[r.off : r.off+n]}
	r.off += n

	return sub, nil
}

func (r *Reader) readByte() (byte, error) {
	if err := r.CheckLength(1); err != nil {
		return 0, err
	}

	b := r.data[r.off]
	r.off++

	return b, nil
}

func (r *Reader) peek() (byte, bool) {
	if r.Remaining() < 1 {
		return 0, false
	}

	return r.data[r.off], true
}

// ReadLength reads a definite length prefix.
func (r *Reader) ReadLength() (int, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}

	if b&0x80 == 0 {
		return int(b), nil
	}

	k := int(b & 0x7F)
	if k == 0 || k > 4 {
		return 0, fmt.Errorf("%w: 0x%02x", ErrBadLength, b)
	}

	if err := r.CheckLength(k); err != nil {
		return 0, err
	}

	n := 0
	for range k {
		n = n<<8 | int(r.data[r.off])
		r.off++
	}

	return n, nil
}

func (r *Reader) readHeader(tag byte) (int, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}

	if b != tag {
		return 0, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrUnexpectedTag, b, tag)
	}

	return r.ReadLength()
}

// ReadSequenceTag reads a sequence header and returns its content length.
func (r *Reader) ReadSequenceTag() (int, error) {
	return r.readHeader(TagSequence)
}

// ReadContextualTag reads the header of context tag tag. When the next
// byte is another tag, or nothing remains, ok is false and nothing is
// consumed.
func (r *Reader) ReadContextualTag(tag byte, constructed bool) (n int, ok bool) {
	b, ok := r.peek()
	if !ok || b != ContextTag(tag, constructed) {
		return 0, false
	}

	start := r.off
	r.off++

	n, err := r.ReadLength()
	if err != nil {
		r.off = start
		return 0, false
	}

	return n, true
}

// ReadInteger reads an INTEGER of at most 32 significant bits.
func (r *Reader) ReadInteger() (uint32, error) {
	n, err := r.readHeader(TagInteger)
	if err != nil {
		return 0, err
	}

	if n < 1 || n > 5 {
		return 0, fmt.Errorf("%w: %d content bytes", ErrBadInteger, n)
	}

	if err := r.CheckLength(n); err != nil {
		return 0, err
	}

	content := r.data[r.off : r.off+n]
	r.off += n

	if n == 5 {
		if content[0] != 0 {
			return 0, fmt.Errorf("%w: leading byte 0x%02x", ErrBadInteger, content[0])
		}

		content = content[1:]
	}

	var v uint32
	for _, b := range content {
		v = v<<8 | uint32(b)
	}

	return v, nil
}

// ReadOctetString reads an OCTET STRING and returns a copy of its payload.
func (r *Reader) ReadOctetString() ([]byte, error) {
	n, err := r.readHeader(TagOctetString)
	if err != nil {
		return nil, err
	}

	if err := r.CheckLength(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+n])
	r.off += n

	return out, nil
}

// ReadCharFromUnicodeOctetString reads a UTF-16LE OCTET STRING into a narrow
// string, stopping at the first NUL.
func (r *Reader) ReadCharFromUnicodeOctetString() (string, error) {
	payload, err := r.ReadOctetString()
	if err != nil {
		return "", err
	}

	return DecodeUTF16(payload)
}

// ReadUnicodeOctetString reads a UTF-16LE OCTET STRING into a wide string,
// stopping at the first NUL.
func (r *Reader) ReadUnicodeOctetString() ([]uint16, error) {
	payload, err := r.ReadOctetString()
	if err != nil {
		return nil, err
	}

	return BytesWide(payload)
}
