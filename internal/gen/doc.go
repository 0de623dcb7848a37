// Package gen emits the C declarations and implementations for a resolved
// schema.
//
// Output is deterministic: records are emitted in registry order and each
// field's fragments come from its resolve.Template. File skeletons (banner,
// include guard, includes) use text/template; function bodies are printed
// into a buffer.
//
// Per record the implementations are:
//   - ber_sizeof_<p><N>_content, ber_sizeof_<p><N>, ber_sizeof_contextual_<p><N>
//   - <p><N>_free
//   - ber_write_<p><N>, ber_write_contextual_<p><N>
//   - ber_read_<p><N>, whose failure path follows resolve.Record.Teardown
//
// Records used as SEQUENCE OF elements also get the _array variants of each.
package gen
