// Package lspconv turns resolver results into Language Server Protocol
// values. Offsets become UTF-16 positions and module paths become file
// URIs.
package lspconv
