// Package diagnostic provides structured errors and warnings for the
// generator pipeline.
//
// Every diagnostic carries enough context (schema line, record name, field
// name, option text) to locate the offending construct without re-running
// with verbose tracing:
//   - Grammar errors from the schema parser
//   - Resolution errors from the semantic resolver
//   - "did you mean" suggestions for misspelled names
package diagnostic
