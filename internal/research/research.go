// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research manages the flat collection of research entries. Each
// entry belongs to exactly one outline point and carries one bibliographic
// record; the point reference is weak and cleaned up by cascade when the
// point is deleted.
package research

import (
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Store holds research entries in insertion order.
type Store struct {
	entries []types.ResearchEntry
}

// New returns an empty research store.
func New() *Store {
	return &Store{}
}

// Restore replaces the store contents with a previously serialized
// collection, preserving ids and order.
func (s *Store) Restore(entries []types.ResearchEntry) {
	s.entries = append([]types.ResearchEntry(nil), entries...)
}

// All returns a copy of the entry collection in insertion order.
func (s *Store) All() []types.ResearchEntry {
	return append([]types.ResearchEntry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// AddEntry appends a new entry for pointID with a fresh id. It is a no-op
// (returning false) when pointID is empty or text is blank after trimming.
// The point id is taken on trust: the caller validates that it resolves at
// creation time, and ids are immutable afterwards.
func (s *Store) AddEntry(pointID, text string, bib types.BibEntry) (types.ResearchEntry, bool) {
	text = strings.TrimSpace(text)
	if pointID == "" || text == "" {
		return types.ResearchEntry{}, false
	}

	e := types.ResearchEntry{
		ID:           uuid.NewString(),
		PointID:      pointID,
		Text:         text,
		Bibliography: bib,
	}
	s.entries = append(s.entries, e)
	return e, true
}

// RemoveEntry removes exactly one entry by id. Removing an absent id is a
// no-op returning false.
func (s *Store) RemoveEntry(entryID string) bool {
	for i, e := range s.entries {
		if e.ID == entryID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByPoints removes every entry whose point id is in pointIDs and
// returns the number removed. This is the cascade hook for point deletion.
func (s *Store) RemoveByPoints(pointIDs []string) int {
	doomed := make(map[string]bool, len(pointIDs))
	for _, id := range pointIDs {
		doomed[id] = true
	}

	removed := 0
	kept := s.entries[:0]
	for _, e := range s.entries {
		if doomed[e.PointID] {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// EntriesFor returns a restartable sequence of the entries attached to
// pointID, in insertion order.
func (s *Store) EntriesFor(pointID string) iter.Seq[types.ResearchEntry] {
	return func(yield func(types.ResearchEntry) bool) {
		for _, e := range s.entries {
			if e.PointID != pointID {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
