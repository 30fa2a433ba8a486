// Package cursor implements the ordered peekable input stream the form
// engine drives. The same generic Cursor[I] type is instantiated by the
// scanner (I = scan.Character) and the parser (I = scan.Token); only the
// position-advance rule changes per instantiation.
package cursor

import "github.com/liagha/axo"

// Advancer computes the position immediately after consuming item,
// given the position immediately before it. Character streams advance
// line/column per rune; token and element streams jump straight to the
// consumed item's span end.
type Advancer[I any] func(before axo.Position, item I) axo.Position

// Cursor is an ordered, peekable, mutable view over a slice of items.
// The invariant Index() <= Length() always holds; Position always
// describes the point between the previously consumed item and the
// next pending one.
type Cursor[I any] struct {
	items    []I
	index    int
	position axo.Position
	advance  Advancer[I]
}

// New builds a cursor over items starting at start, using advance to
// compute each position transition.
func New[I any](items []I, start axo.Position, advance Advancer[I]) *Cursor[I] {
	return &Cursor[I]{items: items, position: start, advance: advance}
}

// Length returns the total number of items in the stream.
func (c *Cursor[I]) Length() int { return len(c.items) }

// Remaining returns how many items are left to consume.
func (c *Cursor[I]) Remaining() int { return len(c.items) - c.index }

// Index returns the current zero-based cursor offset.
func (c *Cursor[I]) Index() int { return c.index }

// Position returns the current source position.
func (c *Cursor[I]) Position() axo.Position { return c.position }

// PeekAhead returns the item n positions ahead of the cursor (n=0 is
// the next pending item) without consuming it. The second return value
// is false when n is out of range.
func (c *Cursor[I]) PeekAhead(n int) (I, bool) {
	idx := c.index + n
	if idx < 0 || idx >= len(c.items) {
		var zero I
		return zero, false
	}
	return c.items[idx], true
}

// PeekBehind returns the item n positions behind the cursor (n=1 is the
// item most recently consumed) without moving it.
func (c *Cursor[I]) PeekBehind(n int) (I, bool) {
	return c.PeekAhead(-n)
}

// Peek is shorthand for PeekAhead(0).
func (c *Cursor[I]) Peek() (I, bool) { return c.PeekAhead(0) }

// Advance consumes and returns the next pending item, updating index
// and position. The second return value is false once the stream is
// exhausted.
func (c *Cursor[I]) Advance() (I, bool) {
	item, ok := c.Peek()
	if !ok {
		return item, false
	}
	c.position = c.advance(c.position, item)
	c.index++
	return item, true
}

// SetIndex explicitly restores the cursor's offset, used by the form
// engine to implement backtracking.
func (c *Cursor[I]) SetIndex(i int) { c.index = i }

// SetPosition explicitly restores the cursor's position.
func (c *Cursor[I]) SetPosition(p axo.Position) { c.position = p }

// Reset returns the cursor to the very start of the stream.
func (c *Cursor[I]) Reset(start axo.Position) {
	c.index = 0
	c.position = start
}

// Insert splices item into the stream at i, shifting later items right.
func (c *Cursor[I]) Insert(i int, item I) {
	c.items = append(c.items, item)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
}

// Remove deletes the item at i, shifting later items left. Used by
// Order.Remove during the strainer pass.
func (c *Cursor[I]) Remove(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	if c.index > i {
		c.index--
	}
}

// Items returns the live backing slice. Callers must not retain it
// across a mutating call (Insert/Remove).
func (c *Cursor[I]) Items() []I { return c.items }

// Snapshot captures enough state to restore the cursor later.
type Snapshot struct {
	Index    int
	Position axo.Position
}

// Mark captures the cursor's current state.
func (c *Cursor[I]) Mark() Snapshot {
	return Snapshot{Index: c.index, Position: c.position}
}

// Restore resets the cursor to a previously captured Snapshot.
func (c *Cursor[I]) Restore(s Snapshot) {
	c.index = s.Index
	c.position = s.Position
}
