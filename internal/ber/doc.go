// Package ber implements the primitive vocabulary the generated C code calls:
// sequence and context tags, definite lengths, INTEGER and OCTET STRING, and
// the UTF-16LE string helpers.
//
// The encoding rules are those of the FreeRDP ber module:
//   - a context tag byte is 0x80|0x20|(tag&0x1F)
//   - lengths up to 0x7F take one byte, longer ones 0x81..0x84 plus big endian bytes
//   - integers are unsigned 32-bit values in the shortest form that keeps
//     the sign bit clear, so 0x80000000 and above take five content bytes
//
// Writer mirrors a wStream of fixed capacity and Reader a bounded stream
// view; Reader.Sub is Stream_StaticInit followed by Stream_Seek.
package ber
