package archive

import (
	"encoding/json"
	"sort"
	"sync"
)

// StorageKey names the persisted archive record.
const StorageKey = "archived_task_ids"

// Store holds the archived-id set in memory and mirrors every mutation to
// the backing KV before returning. Safe for concurrent use.
type Store struct {
	kv KV

	mu  sync.RWMutex
	ids map[string]bool
}

// NewStore loads the persisted set from kv. A malformed record is treated
// as empty and overwritten, so one bad write cannot wedge the store forever.
func NewStore(kv KV) (*Store, error) {
	s := &Store{kv: kv, ids: make(map[string]bool)}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory set with the persisted one. Called at
// startup and whenever the backing file changes under us.
func (s *Store) Reload() error {
	data, found, err := s.kv.Get(StorageKey)
	if err != nil {
		return err
	}

	ids := make(map[string]bool)
	if found {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			// Corrupt record: reset to empty and persist the reset so the
			// bad data does not resurface.
			s.mu.Lock()
			s.ids = ids
			s.mu.Unlock()
			return s.persist()
		}
		for _, id := range list {
			ids[id] = true
		}
	}

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	return nil
}

// Has reports whether id is archived.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id]
}

// IDs returns the archived ids sorted for deterministic output.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Archive adds id to the set. Re-archiving is a no-op; persistence happens
// before the call returns.
func (s *Store) Archive(id string) error {
	s.mu.Lock()
	if s.ids[id] {
		s.mu.Unlock()
		return nil
	}
	s.ids[id] = true
	s.mu.Unlock()
	return s.persist()
}

// Unarchive removes id from the set. Unarchiving an absent id is a no-op.
func (s *Store) Unarchive(id string) error {
	s.mu.Lock()
	if !s.ids[id] {
		s.mu.Unlock()
		return nil
	}
	delete(s.ids, id)
	s.mu.Unlock()
	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.IDs())
	if err != nil {
		return err
	}
	return s.kv.Set(StorageKey, data)
}
