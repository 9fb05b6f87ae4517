package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"vellum/internal/source"
)

// Cursor is a byte position inside a single source unit.
type Cursor struct {
	Unit *source.Unit
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Unit.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided unit.
func NewCursor(u *source.Unit) Cursor {
	limit, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("unit content length overflow: %w", err))
	}
	return Cursor{
		Unit:  u,
		Off:   0,
		Limit: limit,
	}
}

func (c *Cursor) limit() uint32 {
	if c.Limit != 0 {
		return c.Limit
	}
	lenContent, err := safecast.Conv[uint32](len(c.Unit.Content))
	if err != nil {
		panic(fmt.Errorf("unit content length overflow: %w", err))
	}
	return lenContent
}

// EOF reports whether the cursor reached the end of the unit.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Unit.Content[c.Off]
}

// Peek2 reads the current and next byte; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.Unit.Content[c.Off], c.Unit.Content[c.Off+1], true
}

// Bump advances the cursor one byte and returns the byte read.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Unit.Content[c.Off]
	c.Off++
	return b
}

// Mark is a saved position used to compute spans of scanned fragments.
type Mark uint32

// Mark saves the current cursor position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the span of the fragment starting at the mark.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Unit:  c.Unit.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset moves the cursor back to the mark.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Unit.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
