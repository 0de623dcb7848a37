// Package codec encodes and decodes record instances by walking a resolved
// schema with the semantics of the generated C routines.
//
// Sizes and writes follow the sizeof and write functions, reads follow the
// read functions, including the failure path: when a field fails, the
// fields listed by resolve.Record.ReleasedOnFailure are released in that
// order. Config.OnRelease observes every release, which is how tests check
// that nothing leaks and nothing is released twice.
//
// Field values are typed by category:
//
//	ScalarInteger             uint32
//	ByteBlob (bytes)          []byte
//	ByteBlob (transcoded)     string
//	ByteBlob (unicode)        []uint16
//	NestedRecord              *Instance
//	ArrayOfRecord             []*Instance
//
// Presence is explicit: an optional field is absent when it has no value.
package codec
