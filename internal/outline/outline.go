// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline manages the thesis outline: a fixed-depth tree of points
// held as a flat collection with explicit parent references. Only main
// points carry children, so the tree never exceeds depth 2.
package outline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// Direction selects which sibling a moved point swaps with.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Store holds the outline points. Sibling order is the order of the
// underlying collection; main-point order is the order of main points
// within it.
type Store struct {
	points []types.OutlinePoint
}

// New returns an empty outline store.
func New() *Store {
	return &Store{}
}

// Restore replaces the store contents with a previously serialized
// collection, preserving ids, order, and parent links.
func (s *Store) Restore(points []types.OutlinePoint) {
	s.points = append([]types.OutlinePoint(nil), points...)
}

// Points returns a copy of the flat point collection in storage order.
func (s *Store) Points() []types.OutlinePoint {
	return append([]types.OutlinePoint(nil), s.points...)
}

// Find returns the point with the given id.
func (s *Store) Find(id string) (types.OutlinePoint, bool) {
	for _, p := range s.points {
		if p.ID == id {
			return p, true
		}
	}
	return types.OutlinePoint{}, false
}

// Mains returns the top-level points in order.
func (s *Store) Mains() []types.OutlinePoint {
	var mains []types.OutlinePoint
	for _, p := range s.points {
		if p.Level == types.LevelMain {
			mains = append(mains, p)
		}
	}
	return mains
}

// Children returns the sub-points of the main point parentID, in order.
func (s *Store) Children(parentID string) []types.OutlinePoint {
	var children []types.OutlinePoint
	for _, p := range s.points {
		if p.ParentID == parentID && p.Level == types.LevelSub {
			children = append(children, p)
		}
	}
	return children
}

// Branch pairs a main point with its sub-points for tree-shaped consumers
// (export, the API's outline view).
type Branch struct {
	Point    types.OutlinePoint   `json:"point"`
	Children []types.OutlinePoint `json:"children"`
}

// Tree returns the outline as an ordered list of main-point branches.
func (s *Store) Tree() []Branch {
	var tree []Branch
	for _, p := range s.points {
		if p.Level != types.LevelMain {
			continue
		}
		tree = append(tree, Branch{Point: p, Children: s.Children(p.ID)})
	}
	return tree
}

// AddPoint appends a new main point, or a new sub-point under the main
// point parentID. It is a no-op (returning false) when text is blank after
// trimming, or when a sub-point's parent does not resolve to an existing
// main point. Sub-points cannot themselves take children, which caps the
// tree at depth 2.
func (s *Store) AddPoint(text string, level types.PointLevel, parentID string) (types.OutlinePoint, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.OutlinePoint{}, false
	}

	switch level {
	case types.LevelMain:
		parentID = ""
	case types.LevelSub:
		parent, ok := s.Find(parentID)
		if !ok || parent.Level != types.LevelMain {
			return types.OutlinePoint{}, false
		}
	default:
		return types.OutlinePoint{}, false
	}

	p := types.OutlinePoint{
		ID:       uuid.NewString(),
		ParentID: parentID,
		Text:     text,
		Level:    level,
	}
	s.points = append(s.points, p)
	return p, true
}

// DeletePoint removes the point with pointID and, for a main point, all of
// its sub-points. It returns the ids of every removed point so the caller
// can cascade deletion of dependent research entries. An unknown id removes
// nothing.
func (s *Store) DeletePoint(pointID string) []string {
	target, ok := s.Find(pointID)
	if !ok {
		return nil
	}

	doomed := map[string]bool{target.ID: true}
	if target.Level == types.LevelMain {
		for _, c := range s.Children(target.ID) {
			doomed[c.ID] = true
		}
	}

	var removed []string
	kept := s.points[:0]
	for _, p := range s.points {
		if doomed[p.ID] {
			removed = append(removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.points = kept
	return removed
}

// MovePoint swaps the main point at position index (in main-point order)
// with its immediate predecessor or successor. Moves past either boundary
// are no-ops. Sub-points are not reorderable.
func (s *Store) MovePoint(index int, dir Direction) bool {
	// Positions of main points within the flat collection.
	var mainIdx []int
	for i, p := range s.points {
		if p.Level == types.LevelMain {
			mainIdx = append(mainIdx, i)
		}
	}

	if index < 0 || index >= len(mainIdx) {
		return false
	}

	var other int
	switch dir {
	case MoveUp:
		other = index - 1
	case MoveDown:
		other = index + 1
	default:
		return false
	}
	if other < 0 || other >= len(mainIdx) {
		return false
	}

	i, j := mainIdx[index], mainIdx[other]
	s.points[i], s.points[j] = s.points[j], s.points[i]
	return true
}
