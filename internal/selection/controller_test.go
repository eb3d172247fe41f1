package selection

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/yash-srivastava19/recall/internal/notes"
)

type recordingPinner struct {
	toggled []int
}

func (r *recordingPinner) TogglePin(id int) bool {
	r.toggled = append(r.toggled, id)
	return true
}

func list(ids ...int) []notes.Note {
	out := make([]notes.Note, len(ids))
	for i, id := range ids {
		out[i] = notes.Note{ID: id}
	}
	return out
}

func mustSelected(t *testing.T, c *Controller, want int) {
	t.Helper()
	got, ok := c.Selected()
	if !ok {
		t.Fatalf("expected selection %d, got none", want)
	}
	if got != want {
		t.Fatalf("selection: got %d, want %d", got, want)
	}
}

func TestAdvance_sequence(t *testing.T) {
	c := New(&recordingPinner{})
	abc := list(10, 20, 30)

	c.Advance(abc, Next)
	mustSelected(t, c, 10)
	c.Advance(abc, Next)
	mustSelected(t, c, 20)
	c.Advance(abc, Prev)
	mustSelected(t, c, 10)
	c.Advance(abc, Prev)
	mustSelected(t, c, 10)
}

func TestAdvance_prevFromNoneSelectsFirst(t *testing.T) {
	c := New(&recordingPinner{})
	c.Advance(list(1, 2, 3), Prev)
	mustSelected(t, c, 1)
}

func TestAdvance_clampsAtEnd(t *testing.T) {
	c := New(&recordingPinner{})
	ns := list(1, 2)
	for i := 0; i < 5; i++ {
		c.Advance(ns, Next)
	}
	mustSelected(t, c, 2)
}

func TestAdvance_emptyIsNoop(t *testing.T) {
	c := New(&recordingPinner{})
	c.Advance(nil, Next)
	if _, ok := c.Selected(); ok {
		t.Error("advance on empty list should not select")
	}

	c.SelectExplicit(7)
	c.Advance(list(), Prev)
	mustSelected(t, c, 7)
}

func TestAdvance_staleSelectionFallsBackToFirst(t *testing.T) {
	for _, d := range []Direction{Next, Prev} {
		c := New(&recordingPinner{})
		c.SelectExplicit(99)
		c.Advance(list(4, 5, 6), d)
		mustSelected(t, c, 4)
	}
}

func TestAdvance_zeroIDIsSelectable(t *testing.T) {
	c := New(&recordingPinner{})
	ns := list(0, 1)
	c.Advance(ns, Next)
	mustSelected(t, c, 0)
	c.Advance(ns, Next)
	mustSelected(t, c, 1)
}

func TestToggleSelectedPin(t *testing.T) {
	p := &recordingPinner{}
	c := New(p)

	if c.ToggleSelectedPin() {
		t.Error("toggle with no selection should report false")
	}
	if len(p.toggled) != 0 {
		t.Errorf("no pin should be toggled, got %v", p.toggled)
	}

	c.SelectExplicit(3)
	if !c.ToggleSelectedPin() {
		t.Error("toggle with selection should report true")
	}
	if len(p.toggled) != 1 || p.toggled[0] != 3 {
		t.Errorf("toggled: got %v", p.toggled)
	}
	mustSelected(t, c, 3)
}

func TestOnChange(t *testing.T) {
	c := New(&recordingPinner{})
	var events []int
	c.OnChange(func(id int, ok bool) {
		if !ok {
			id = -1
		}
		events = append(events, id)
	})
	ns := list(1, 2)

	c.Advance(ns, Next) // 1
	c.Advance(ns, Prev) // clamped, unchanged
	c.SelectExplicit(1) // unchanged
	c.SelectExplicit(2)
	c.Clear()
	c.Clear()

	want := []int{1, 2, -1}
	if len(events) != len(want) {
		t.Fatalf("events: got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events: got %v, want %v", events, want)
		}
	}
}

func TestRevalidate(t *testing.T) {
	c := New(&recordingPinner{})
	c.SelectExplicit(2)

	c.Revalidate(list(1, 2, 3))
	mustSelected(t, c, 2)

	c.Revalidate(list(1, 3))
	if _, ok := c.Selected(); ok {
		t.Error("selection outside visible list should be cleared")
	}
	if idx := c.Index(list(1, 3)); idx != -1 {
		t.Errorf("Index after clear: got %d", idx)
	}
}

func TestAdvance_properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "len")
		ns := make([]notes.Note, n)
		for i := range ns {
			ns[i].ID = i * 3
		}
		c := New(&recordingPinner{})
		pos := -1
		moves := rapid.SliceOf(rapid.Bool()).Draw(t, "moves")
		for _, forward := range moves {
			d := Prev
			if forward {
				d = Next
			}
			c.Advance(ns, d)

			switch {
			case pos < 0:
				pos = 0
			case forward:
				pos = min(pos+1, n-1)
			default:
				pos = max(pos-1, 0)
			}
			if got := c.Index(ns); got != pos {
				t.Fatalf("after %v: index %d, want %d", d, got, pos)
			}
		}
	})
}
