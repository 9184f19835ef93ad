// Package review implements the keyboard-driven sample triage core:
// a clamped navigation cursor over a fixed item list, an append-only
// decision log with single-level undo, a key-event dispatcher, and the
// session that ties them to a remote backend.
package review

// ItemID identifies a reviewable sample. Opaque to this package.
type ItemID string

// Cursor tracks the current position in a fixed, ordered item list.
// Navigation clamps at both ends; there is no wraparound.
type Cursor struct {
	items []ItemID
	pos   int
}

// NewCursor creates a cursor positioned at index 0. The item slice is
// not copied; callers must treat it as frozen for the cursor's lifetime.
func NewCursor(items []ItemID) *Cursor {
	return &Cursor{items: items}
}

// Next advances the cursor by one unless it is already at the last
// index, and returns the resulting position.
func (c *Cursor) Next() int {
	if c.pos+1 < len(c.items) {
		c.pos++
	}
	return c.pos
}

// Prev retreats the cursor by one unless it is already at index 0, and
// returns the resulting position.
func (c *Cursor) Prev() int {
	if c.pos-1 >= 0 {
		c.pos--
	}
	return c.pos
}

// Current returns the item under the cursor, or ErrEmptyList when the
// list has no items.
func (c *Cursor) Current() (ItemID, error) {
	if len(c.items) == 0 {
		return "", ErrEmptyList
	}
	return c.items[c.pos], nil
}

// JumpTo moves the cursor to index, or returns an OutOfRangeError
// leaving the position unchanged.
func (c *Cursor) JumpTo(index int) error {
	if index < 0 || index >= len(c.items) {
		return &OutOfRangeError{Index: index, Length: len(c.items)}
	}
	c.pos = index
	return nil
}

// Pos returns the current index.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of items.
func (c *Cursor) Len() int { return len(c.items) }

// AtEnd reports whether the cursor cannot advance further.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.items)-1 }

// Items returns the underlying item list.
func (c *Cursor) Items() []ItemID { return c.items }
