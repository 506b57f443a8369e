package core

import (
	"log/slog"
	"sort"
	"sync"
)

// entry is the single authoritative copy of a record plus its set membership.
// The byFile/bySet indexes only hold ids pointing back here, so an update
// touches exactly one place and the two views cannot diverge.
type entry struct {
	set string
	rec Record
}

// Store is the in-memory index of all memo records for one project session.
// It owns every record and serves two derived views over the same ownership:
// by source file path and by memo set title. All mutators keep both views in
// step within the same call.
//
// The Store performs no I/O. Persistence is the gateway's job; the Store is
// seeded once from the gateway's load index and mutated only through event
// handlers afterwards.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string            // global insertion order of ids
	byFile  map[string][]string // filePath -> ids, insertion order
	bySet   map[string][]string // set title -> ids, insertion order
	logger  *slog.Logger
}

// NewStore creates an empty Store. The logger may be nil.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		byFile:  make(map[string][]string),
		bySet:   make(map[string][]string),
		logger:  logger,
	}
}

// Seed replaces the Store's contents with the given load index
// (filePath -> tagged records), the exact shape the gateway's LoadAll
// produces. File paths are visited in sorted order so seeding is
// deterministic regardless of map iteration.
func (s *Store) Seed(index map[string][]Tagged) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry)
	s.order = nil
	s.byFile = make(map[string][]string)
	s.bySet = make(map[string][]string)

	paths := make([]string, 0, len(index))
	for p := range index {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		for _, t := range index[p] {
			if _, exists := s.entries[t.Record.ID]; exists {
				if s.logger != nil {
					s.logger.Warn("duplicate record id during seed, skipping", "id", t.Record.ID, "filePath", p)
				}
				continue
			}
			s.insert(t.Set, t.Record)
		}
	}
}

// insert appends to the ownership table and both indexes. Caller holds the lock.
func (s *Store) insert(set string, rec Record) {
	s.entries[rec.ID] = &entry{set: set, rec: rec}
	s.order = append(s.order, rec.ID)
	s.byFile[rec.FilePath] = append(s.byFile[rec.FilePath], rec.ID)
	s.bySet[set] = append(s.bySet[set], rec.ID)
}

// Add inserts a record under the given memo set title. The record's id must
// be unique across the whole Store; memo text is free to repeat.
func (s *Store) Add(set string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[rec.ID]; exists {
		return ErrDuplicateID
	}

	s.insert(set, rec)

	if s.logger != nil {
		s.logger.Debug("record added", "id", rec.ID, "set", set, "filePath", rec.FilePath)
	}
	return nil
}

// Update replaces the content of the record with the given id in place,
// preserving its memo set membership and its position in insertion order.
// The replacement must name the same file path as the stored record.
func (s *Store) Update(id string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return ErrNotFound
	}
	if rec.FilePath != e.rec.FilePath {
		return ErrFilePathMismatch
	}

	rec.ID = id
	e.rec = rec

	if s.logger != nil {
		s.logger.Debug("record updated", "id", id, "filePath", rec.FilePath)
	}
	return nil
}

// Delete removes the record with the given id from the filePath bucket and
// from whatever set it belonged to.
func (s *Store) Delete(id, filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.rec.FilePath != filePath {
		return ErrNotFound
	}

	delete(s.entries, id)
	s.order = removeID(s.order, id)

	s.byFile[filePath] = removeID(s.byFile[filePath], id)
	if len(s.byFile[filePath]) == 0 {
		delete(s.byFile, filePath)
	}
	s.bySet[e.set] = removeID(s.bySet[e.set], id)
	if len(s.bySet[e.set]) == 0 {
		delete(s.bySet, e.set)
	}

	if s.logger != nil {
		s.logger.Debug("record deleted", "id", id, "set", e.set, "filePath", filePath)
	}
	return nil
}

// All returns every record across all sets in global insertion order.
func (s *Store) All() []Tagged {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.order)
}

// ByFilePath returns all records annotating the given file, across sets,
// in insertion order.
func (s *Store) ByFilePath(filePath string) []Tagged {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byFile[filePath])
}

// BySet returns all records in the named memo set, across files,
// in insertion order.
func (s *Store) BySet(set string) []Tagged {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.bySet[set])
}

// Find looks up the single record with the given file path and id.
func (s *Store) Find(filePath, id string) (Tagged, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.rec.FilePath != filePath {
		return Tagged{}, false
	}
	return Tagged{Set: e.set, Record: e.rec}, true
}

// SetOf reports which memo set the record with the given id belongs to.
func (s *Store) SetOf(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return "", false
	}
	return e.set, true
}

// Sets returns the titles of all memo sets currently holding records, sorted.
func (s *Store) Sets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make([]string, 0, len(s.bySet))
	for name := range s.bySet {
		sets = append(sets, name)
	}
	sort.Strings(sets)
	return sets
}

// Len returns the total number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// collect materializes Tagged values for the given ids. Caller holds a read lock.
func (s *Store) collect(ids []string) []Tagged {
	out := make([]Tagged, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entries[id]; ok {
			out = append(out, Tagged{Set: e.set, Record: e.rec})
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
