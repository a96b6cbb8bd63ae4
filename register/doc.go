// Package register models a device configuration space as named, addressed
// registers built from named bit-fields.
//
// Each Register owns a single mutable bitvec.Vector. A Field is a positioned
// view into that vector: reading a field extracts a fresh copy of its bits,
// and writing a field overwrites only its own bits of the register value.
//
// A Schema is the catalog of all registers and fields of one device. It is
// constructed once with a Builder (or LoadYAML) and owned by the caller; there
// is no package level state, so independent schemas may coexist.
//
// Nothing in this package locks. Callers serialize access to a schema, and
// callers are responsible for refreshing dependent views after a write; the
// Observers type is provided for that purpose.
package register
