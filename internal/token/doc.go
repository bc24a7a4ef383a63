// Package token defines the lexical vocabulary of the scripting language:
// token kinds, keywords and the Token value produced by the lexer.
//
// Offsets carried by tokens are absolute byte offsets into the module text,
// even when only a slice of the module was lexed.
package token
