// Package pins mirrors the pinned subset of a notes.Store into a single
// key of a kv.Store, as a JSON array of note ids.
package pins

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yash-srivastava19/recall/internal/kv"
	"github.com/yash-srivastava19/recall/internal/notes"
)

const DefaultKey = "pinned-ids"

type Mirror struct {
	kv  kv.Store
	key string
	log *slog.Logger

	// OnError receives write failures from observer-driven saves, which
	// have no caller to return to.
	OnError func(error)
}

func New(store kv.Store, key string, logger *slog.Logger) *Mirror {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{kv: store, key: key, log: logger.With("key", key)}
}

func (m *Mirror) Key() string {
	return m.key
}

// Load applies the persisted pin set to s. An absent key leaves the dataset
// defaults alone; a present one is authoritative. Malformed contents are
// logged and ignored.
func (m *Mirror) Load(s *notes.Store) error {
	raw, ok, err := m.kv.Get(m.key)
	if err != nil {
		return fmt.Errorf("read pinned ids: %w", err)
	}
	if !ok {
		m.log.Debug("no persisted pin set")
		return nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		m.log.Warn("discarding malformed pin set", "err", err)
		return nil
	}
	if unknown := s.SetPinned(ids); len(unknown) > 0 {
		m.log.Debug("ignoring persisted ids with no matching note", "ids", unknown)
	}
	return nil
}

// Save overwrites the key with the current pinned ids in store order.
func (m *Mirror) Save(s *notes.Store) error {
	data, err := json.Marshal(s.PinnedIDs())
	if err != nil {
		return fmt.Errorf("encode pinned ids: %w", err)
	}
	if err := m.kv.Set(m.key, string(data)); err != nil {
		return fmt.Errorf("write pinned ids: %w", err)
	}
	return nil
}

// Bind loads the persisted set into s, writes the resulting snapshot back,
// and subscribes so every later mutation of s is persisted.
func (m *Mirror) Bind(s *notes.Store) error {
	if err := m.Load(s); err != nil {
		return err
	}
	if err := m.Save(s); err != nil {
		return err
	}
	s.Subscribe(func(st *notes.Store) {
		if err := m.Save(st); err != nil {
			m.log.Error("persist pins", "err", err)
			if m.OnError != nil {
				m.OnError(err)
			}
		}
	})
	return nil
}
