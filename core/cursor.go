package core

// EndMarker is returned by Peek once the input is exhausted.
const EndMarker byte = 0

// Cursor walks the stripped program text one token at a time.
type Cursor struct {
	input string
	pos   int
}

// NewCursor creates a cursor positioned at the first token of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return EndMarker
	}

	return c.input[c.pos]
}

// AtEnd reports whether every token has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.input)
}

// Pos returns the offset of the current token.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unconsumed tokens.
func (c *Cursor) Remaining() int {
	return len(c.input) - c.pos
}

// Advance consumes the current token. Moving onto the end of the input is
// fine; advancing past it is an error.
func (c *Cursor) Advance() error {
	if c.AtEnd() {
		return endOfInputAt(c.pos)
	}

	Trace("Token",
		"Symbol", string(c.input[c.pos]),
		"Pos", c.pos,
		"StmtEnd", c.input[c.pos] == ';',
	)

	c.pos++

	return nil
}
