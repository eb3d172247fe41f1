package notes

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrDuplicateID = errors.New("duplicate note id")

// Store is the ordered, in-memory set of notes. Order is dataset order and
// never changes; only the pinned flag mutates after construction.
type Store struct {
	notes     []Note
	index     map[int]int
	observers []func(*Store)
	log       *slog.Logger
}

func NewStore(dataset []Note, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		notes: make([]Note, 0, len(dataset)),
		index: make(map[int]int, len(dataset)),
		log:   logger,
	}
	for _, n := range dataset {
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, n.ID)
		}
		s.index[n.ID] = len(s.notes)
		s.notes = append(s.notes, n.clone())
	}
	return s, nil
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func(*Store)) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn(s)
	}
}

func (s *Store) Len() int {
	return len(s.notes)
}

// All returns a copy of every note in store order.
func (s *Store) All() []Note {
	out := make([]Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.clone()
	}
	return out
}

func (s *Store) Get(id int) (Note, bool) {
	i, ok := s.index[id]
	if !ok {
		return Note{}, false
	}
	return s.notes[i].clone(), true
}

// Pinned returns the pinned notes in store order.
func (s *Store) Pinned() []Note {
	var out []Note
	for _, n := range s.notes {
		if n.Pinned {
			out = append(out, n.clone())
		}
	}
	return out
}

// PinnedIDs never returns nil so it always serializes as a JSON array.
func (s *Store) PinnedIDs() []int {
	ids := make([]int, 0, len(s.notes))
	for _, n := range s.notes {
		if n.Pinned {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// TogglePin flips the pinned flag of the note with the given id.
// Unknown ids are a silent no-op and report false.
func (s *Store) TogglePin(id int) bool {
	i, ok := s.index[id]
	if !ok {
		s.log.Debug("toggle pin on unknown note", "id", id)
		return false
	}
	s.notes[i].Pinned = !s.notes[i].Pinned
	s.log.Debug("pin toggled", "id", id, "pinned", s.notes[i].Pinned)
	s.notify()
	return true
}

func (s *Store) ClearAllPins() {
	for i := range s.notes {
		s.notes[i].Pinned = false
	}
	s.log.Debug("all pins cleared")
	s.notify()
}

// SetPinned replaces every pinned flag: a note is pinned iff its id is in
// ids. Ids without a matching note are ignored and returned.
func (s *Store) SetPinned(ids []int) (unknown []int) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
		if _, ok := s.index[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	for i := range s.notes {
		s.notes[i].Pinned = want[s.notes[i].ID]
	}
	s.notify()
	return unknown
}
