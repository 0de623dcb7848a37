// Package resolve turns a parsed schema into a resolved schema ready for
// code generation.
//
// Resolution runs only once the whole registry is parsed, so a field may
// name a record defined further down the schema. Each field is classified
// into exactly one Category and gets the Template rendering its length,
// write, read and cleanup fragments:
//   - ScalarInteger: INTEGER, fixed width, nothing to release
//   - ByteBlob: OCTET STRING in one of three Representations
//   - NestedRecord: a field typed by another record, released by its destructor
//   - ArrayOfRecord: SEQUENCE OF a record, which is marked ArrayElement so the
//     emitter produces its array functions
//
// Resolve is pure: the parsed schema is never modified.
package resolve
