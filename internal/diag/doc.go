// Package diag defines the diagnostic model used for parse notes.
//
// Nothing reported here is fatal: a module whose declarations cannot be
// classified still produces a valid scope tree, and the notes only explain
// why a region degraded to an untyped scope. Diagnostics are deterministic
// values: Bag.Sort orders them by module, span, severity and code so CLI
// output is stable.
package diag
