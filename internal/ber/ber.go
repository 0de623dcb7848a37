package ber

import "errors"

// Universal tags and tag bits.
const (
	TagInteger     byte = 0x02
	TagOctetString byte = 0x04
	TagSequence    byte = 0x30

	ClassContext byte = 0x80
	Constructed  byte = 0x20
	TagMask      byte = 0x1F
)

var (
	// ErrShortBuffer is returned when a write exceeds the writer capacity.
	ErrShortBuffer = errors.New("ber: short buffer")
	// ErrTruncated is returned when a read needs more bytes than remain.
	ErrTruncated = errors.New("ber: truncated input")
	// ErrUnexpectedTag is returned when the next tag is not the expected one.
	ErrUnexpectedTag = errors.New("ber: unexpected tag")
	// ErrBadLength is returned for indefinite or oversized length forms.
	ErrBadLength = errors.New("ber: unsupported length encoding")
	// ErrBadInteger is returned for integer contents that do not fit 32 bits.
	ErrBadInteger = errors.New("ber: integer out of range")
	// ErrOddLength is returned for UTF-16 payloads of odd byte length.
	ErrOddLength = errors.New("ber: odd UTF-16 payload length")
)

// ContextTag returns the identifier byte of context tag n.
func ContextTag(n byte, constructed bool) byte {
	b := ClassContext | (n & TagMask)
	if constructed {
		b |= Constructed
	}

	return b
}

// SizeofLength is the size of the length prefix for n content bytes.
func SizeofLength(n int) int {
	switch {
	case n <= 0x7F:
		return 1
	case n <= 0xFF:
		return 2
	case n <= 0xFFFF:
		return 3
	case n <= 0xFFFFFF:
		return 4
	default:
		return 5
	}
}

// integerContentLen is the content length of an encoded integer.
func integerContentLen(v uint32) int {
	switch {
	case v < 0x80:
		return 1
	case v < 0x8000:
		return 2
	case v < 0x800000:
		return 3
	case v < 0x80000000:
		return 4
	default:
		return 5
	}
}

// SizeofInteger is the full size of an INTEGER: tag, length and content.
func SizeofInteger(v uint32) int {
	return 2 + integerContentLen(v)
}

// SizeofContextualTag is the size of a context tag header over n bytes.
func SizeofContextualTag(n int) int {
	return 1 + SizeofLength(n)
}

// SizeofContextualInteger is the size of an INTEGER wrapped in a context tag.
func SizeofContextualInteger(v uint32) int {
	inner := SizeofInteger(v)
	return SizeofContextualTag(inner) + inner
}

// SizeofOctetString is the full size of an OCTET STRING with n payload bytes.
func SizeofOctetString(n int) int {
	return 1 + SizeofLength(n) + n
}

// SizeofContextualOctetString is the size of an OCTET STRING with n payload
// bytes wrapped in a context tag.
func SizeofContextualOctetString(n int) int {
	inner := SizeofOctetString(n)
	return SizeofContextualTag(inner) + inner
}

// SizeofSequenceTag is the size of a sequence header over n bytes.
func SizeofSequenceTag(n int) int {
	return 1 + SizeofLength(n)
}

// SizeofSequence is the full size of a sequence with n content bytes.
func SizeofSequence(n int) int {
	return SizeofSequenceTag(n) + n
}
