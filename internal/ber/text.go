package ber

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeUTF16 transcodes a narrow string to UTF-16LE. The payload ends at
// the first NUL, as strlen would.
func EncodeUTF16(s string) ([]byte, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	return utf16le.NewEncoder().Bytes([]byte(s))
}

// DecodeUTF16 transcodes a UTF-16LE payload to a narrow string, stopping at
// the first NUL.
func DecodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", ErrOddLength
	}

	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	s := string(out)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	return s, nil
}

// WideBytes serializes a wide string as UTF-16LE up to its first NUL.
func WideBytes(s []uint16) []byte {
	out := make([]byte, 0, 2*len(s))
	for _, u := range s {
		if u == 0 {
			break
		}

		out = binary.LittleEndian.AppendUint16(out, u)
	}

	return out
}

// BytesWide parses a UTF-16LE payload into a wide string up to its first NUL.
func BytesWide(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, ErrOddLength
	}

	out := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}

		out = append(out, u)
	}

	return out, nil
}
