// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PointLevel is the nesting level of an outline point. The outline is a
// fixed-depth tree: main points may carry sub-points, sub-points may not.
type PointLevel string

const (
	LevelMain PointLevel = "main"
	LevelSub  PointLevel = "sub"
)

// OutlinePoint is one node of the thesis outline. Points are held as a flat
// collection with an explicit parent reference; sibling order is the order
// of the collection. A main point has an empty ParentID.
type OutlinePoint struct {
	// ID is a stable unique identifier. IDs are immutable after creation.
	ID string `json:"id" yaml:"id"`

	// ParentID references the owning main point for sub-points; empty for
	// main points.
	ParentID string `json:"parentId,omitempty" yaml:"parent_id,omitempty"`

	// Text is the point's outline text.
	Text string `json:"text" yaml:"text"`

	// Level is "main" or "sub".
	Level PointLevel `json:"level" yaml:"level"`
}

// ResearchEntry is a research note attached to exactly one outline point,
// carrying its own bibliographic record. Entries reference points weakly:
// deleting a point cascades deletion of its entries, but point IDs never
// change, so no referential update is needed afterwards.
type ResearchEntry struct {
	// ID is a stable unique identifier.
	ID string `json:"id" yaml:"id"`

	// PointID references the outline point this note belongs to.
	PointID string `json:"pointId" yaml:"point_id"`

	// Text is the research note body. Markdown is preserved verbatim and
	// rendered at export time.
	Text string `json:"text" yaml:"text"`

	// Bibliography is the note's bibliographic record.
	Bibliography BibEntry `json:"bibliography" yaml:"bibliography"`
}
