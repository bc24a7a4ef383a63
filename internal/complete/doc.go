// Package complete answers editor requests against a workspace: completion,
// signature help, hover, go-to-definition and reference search.
//
// Every request starts by resolving a Context around the cursor. The
// resolver scans backward from the cursor for candidate expressions, parses
// the longest one that forms a statement or an expression, and classifies
// the result into what is being typed and what type the position expects.
// Requests run under the workspace read lock and never fail: an
// unresolvable position yields an empty result.
package complete
