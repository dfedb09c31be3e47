// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders bibliographic records as formatted citation
// strings. Every (style, source type, context) combination maps to a fixed
// rule in a lookup table; rendering is pure, so two installations exporting
// the same data produce byte-identical citations.
package citation

import (
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// segment emits prefix+value+suffix when the referenced field is non-empty,
// and nothing at all otherwise, so absent fields leave no stray punctuation.
type segment struct {
	Field  types.BibField
	Prefix string
	Suffix string
}

// rule is the formatting rule for one (style, source type, context)
// combination. Open and Close wrap the whole citation and are emitted only
// when at least one segment rendered: parenthetical in-text forms like
// "(Smith, 2020)", and terminal periods that must appear even when the
// trailing optional fields are absent.
type rule struct {
	Open     string
	Segments []segment
	Close    string
}

// normalizeStyle resolves style aliases. Chicago is an alias of Turabian:
// the two share every table row, by product definition.
func normalizeStyle(style types.Style) types.Style {
	if style == types.StyleChicago {
		return types.StyleTurabian
	}
	return style
}

// Format renders entry in the given style and context. Unknown styles,
// source types, or contexts render as the empty string.
func Format(entry types.BibEntry, style types.Style, ctx types.CitationContext) string {
	bySource, ok := templates[normalizeStyle(style)]
	if !ok {
		return ""
	}
	byContext, ok := bySource[entry.SourceType]
	if !ok {
		return ""
	}
	r, ok := byContext[ctx]
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, seg := range r.Segments {
		v := entry.Field(seg.Field)
		if v == "" {
			continue
		}
		b.WriteString(seg.Prefix)
		b.WriteString(v)
		b.WriteString(seg.Suffix)
	}
	if b.Len() == 0 {
		return ""
	}
	return r.Open + b.String() + r.Close
}

// requiredFields lists the source-type-specific fields that must be
// non-blank, beyond the base author/title/year, for an entry to count as
// complete.
var requiredFields = map[types.SourceType][]types.BibField{
	types.SourceBook:      {types.FieldPublisher},
	types.SourceJournal:   {types.FieldJournalName, types.FieldVolume, types.FieldIssue},
	types.SourceWebsite:   {types.FieldURL},
	types.SourceNewspaper: {types.FieldNewspaperName},
	types.SourceChapter:   {types.FieldBookTitle, types.FieldEditors},
}

// IsComplete reports whether entry carries every field its source type
// requires. Completeness gates recording into the autocomplete history
// only; it never blocks saving a research entry.
func IsComplete(entry types.BibEntry) bool {
	required, ok := requiredFields[entry.SourceType]
	if !ok {
		return false
	}

	base := []types.BibField{types.FieldAuthor, types.FieldTitle, types.FieldYear}
	for _, f := range append(base, required...) {
		if strings.TrimSpace(entry.Field(f)) == "" {
			return false
		}
	}
	return true
}
