// Package workspace owns the parsed modules of a project and the type
// database they register into. Module updates replace a module's
// contribution atomically with respect to queries.
package workspace
