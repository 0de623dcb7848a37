// Package match ranks identifiers by edit distance.
//
// It backs the "did you mean" hints attached to diagnostics when a schema
// names a record, field or option that does not exist.
package match
