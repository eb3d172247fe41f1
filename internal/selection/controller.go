// Package selection tracks the single keyboard-selected note and moves it
// through the currently visible (filtered) notes.
package selection

import "github.com/yash-srivastava19/recall/internal/notes"

type Direction int

const (
	Next Direction = iota
	Prev
)

// Pinner is the pin toggle entry point; *notes.Store satisfies it.
type Pinner interface {
	TogglePin(id int) bool
}

type Controller struct {
	pins     Pinner
	selected int
	has      bool
	onChange func(id int, ok bool)
}

func New(pins Pinner) *Controller {
	return &Controller{pins: pins}
}

// OnChange registers the hook run whenever the selection changes. The UI
// uses it to scroll the selected row into view.
func (c *Controller) OnChange(fn func(id int, ok bool)) {
	c.onChange = fn
}

func (c *Controller) Selected() (int, bool) {
	return c.selected, c.has
}

func (c *Controller) set(id int, ok bool) {
	if c.has == ok && (!ok || c.selected == id) {
		return
	}
	c.selected, c.has = id, ok
	if c.onChange != nil {
		c.onChange(id, ok)
	}
}

func (c *Controller) SelectExplicit(id int) {
	c.set(id, true)
}

func (c *Controller) Clear() {
	c.set(0, false)
}

// Advance moves the selection one step through visible, clamped to its
// bounds. With no selection, or a selection not in visible, both directions
// land on the first note. Empty visible is a no-op.
func (c *Controller) Advance(visible []notes.Note, d Direction) {
	if len(visible) == 0 {
		return
	}
	idx := c.indexIn(visible)
	next := 0
	if idx >= 0 {
		next = idx + 1
		if d == Prev {
			next = idx - 1
		}
		next = max(0, min(next, len(visible)-1))
	}
	c.set(visible[next].ID, true)
}

// ToggleSelectedPin reports whether a selection existed to toggle.
func (c *Controller) ToggleSelectedPin() bool {
	if !c.has {
		return false
	}
	c.pins.TogglePin(c.selected)
	return true
}

// Revalidate clears the selection when it no longer refers to a visible note.
func (c *Controller) Revalidate(visible []notes.Note) {
	if c.has && c.indexIn(visible) < 0 {
		c.Clear()
	}
}

// Index is the position of the selection in visible, or -1.
func (c *Controller) Index(visible []notes.Note) int {
	return c.indexIn(visible)
}

func (c *Controller) indexIn(visible []notes.Note) int {
	if !c.has {
		return -1
	}
	for i, n := range visible {
		if n.ID == c.selected {
			return i
		}
	}
	return -1
}
