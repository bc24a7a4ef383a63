// Package ast holds the syntax nodes produced by the error-recovering parser.
//
// Node sets are sealed: only this package implements Expr and Stmt, so a
// type switch over them can be exhaustive. Incomplete input is represented in
// the tree rather than rejected: a member access with no name after the dot
// has an empty Name, a binary expression without a right operand has a nil
// Right, and an unclosed call has Closed == false.
package ast
