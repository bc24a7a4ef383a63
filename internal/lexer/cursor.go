package lexer

// Cursor is a byte position inside the lexed text.
type Cursor struct {
	Src string
	Off int
}

// EOF reports whether the cursor ran past the last byte.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt returns the byte n positions ahead or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.Src) || c.Off+n < 0 {
		return 0
	}
	return c.Src[c.Off+n]
}

// Peek2 returns the current and the following byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Peek3 returns the current byte and the two following it.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= len(c.Src) {
		return 0, 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], c.Src[c.Off+2], true
}

// Bump advances by one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Eat consumes b when it is the current byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the remaining text starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return len(c.Src)-c.Off >= len(s) && c.Src[c.Off:c.Off+len(s)] == s
}
