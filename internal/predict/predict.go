// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package predict suggests previously entered bibliographic values as the
// user types. History is kept per source type, most recent first, capped at
// ten records and deduplicated by (author, title). Matching is a
// case-insensitive prefix scan of the active field.
package predict

import (
	"strings"
	"time"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

const (
	// historyCap is the maximum number of records retained per source type.
	historyCap = 10

	// doubleTriggerWindow is the interval within which a second completion
	// request completes all fields instead of one.
	doubleTriggerWindow = 300 * time.Millisecond
)

// fieldOrder is the fixed visual order of the bibliography form per source
// type. Single-field completion advances focus along this order.
var fieldOrder = map[types.SourceType][]types.BibField{
	types.SourceBook: {
		types.FieldAuthor, types.FieldTitle, types.FieldYear,
		types.FieldPublisher, types.FieldCity, types.FieldEdition,
		types.FieldDOI, types.FieldURL,
	},
	types.SourceJournal: {
		types.FieldAuthor, types.FieldTitle, types.FieldYear,
		types.FieldJournalName, types.FieldVolume, types.FieldIssue,
		types.FieldPages, types.FieldDOI, types.FieldURL,
	},
	types.SourceWebsite: {
		types.FieldAuthor, types.FieldTitle, types.FieldYear,
		types.FieldWebsiteName, types.FieldOrganization, types.FieldURL,
		types.FieldAccessDate,
	},
	types.SourceNewspaper: {
		types.FieldAuthor, types.FieldTitle, types.FieldYear,
		types.FieldNewspaperName, types.FieldPages, types.FieldURL,
	},
	types.SourceChapter: {
		types.FieldAuthor, types.FieldTitle, types.FieldYear,
		types.FieldBookTitle, types.FieldEditors, types.FieldChapterPages,
		types.FieldPublisher, types.FieldCity,
	},
}

// Predictor holds per-source-type completion history and the double-trigger
// clock state. It is not safe for concurrent use; the form is a
// single-session surface.
type Predictor struct {
	history      map[types.SourceType][]types.BibEntry
	lastRecorded types.BibEntry
	hasRecorded  bool
	lastTrigger  time.Time
	now          func() time.Time
}

// New returns a predictor using the real clock.
func New() *Predictor {
	return NewWithClock(time.Now)
}

// NewWithClock returns a predictor with an injectable clock so tests can
// control the double-trigger window deterministically.
func NewWithClock(now func() time.Time) *Predictor {
	return &Predictor{
		history: make(map[types.SourceType][]types.BibEntry),
		now:     now,
	}
}

// History returns a copy of the bucket for sourceType, most recent first.
func (p *Predictor) History(sourceType types.SourceType) []types.BibEntry {
	return append([]types.BibEntry(nil), p.history[sourceType]...)
}

// Restore replaces the bucket for sourceType with a previously serialized
// one, re-applying the cap.
func (p *Predictor) Restore(sourceType types.SourceType, entries []types.BibEntry) {
	if len(entries) > historyCap {
		entries = entries[:historyCap]
	}
	p.history[sourceType] = append([]types.BibEntry(nil), entries...)
}

// FindMatch scans the bucket for sourceType and returns the first record
// whose value at field starts with typed, comparing case-insensitively.
// A blank typed value never matches.
func (p *Predictor) FindMatch(sourceType types.SourceType, field types.BibField, typed string) (types.BibEntry, bool) {
	if strings.TrimSpace(typed) == "" {
		return types.BibEntry{}, false
	}
	lowered := strings.ToLower(typed)
	for _, e := range p.history[sourceType] {
		if strings.HasPrefix(strings.ToLower(e.Field(field)), lowered) {
			return e, true
		}
	}
	return types.BibEntry{}, false
}

// CompletionKind reports what a Complete call did.
type CompletionKind int

const (
	// CompletedNone means the prediction was stale and nothing changed.
	CompletedNone CompletionKind = iota

	// CompletedField means the focused field was filled from the match.
	CompletedField

	// CompletedAll means every field except sourceType was filled.
	CompletedAll
)

// Complete applies the matched prediction to entry. A single trigger fills
// just the focused field, provided typed is still a prefix of the predicted
// value (guarding against stale predictions after further typing), and
// returns the next field in the form order for focus advancement. A second
// trigger within 300 ms fills every field from the match except the
// sourceType discriminant.
func (p *Predictor) Complete(entry *types.BibEntry, match types.BibEntry, field types.BibField, typed string) (CompletionKind, types.BibField) {
	now := p.now()
	rapid := !p.lastTrigger.IsZero() && now.Sub(p.lastTrigger) < doubleTriggerWindow
	p.lastTrigger = now

	if rapid {
		keep := entry.SourceType
		*entry = match
		entry.SourceType = keep
		return CompletedAll, ""
	}

	predicted := match.Field(field)
	if !strings.HasPrefix(strings.ToLower(predicted), strings.ToLower(typed)) {
		return CompletedNone, ""
	}
	entry.SetField(field, predicted)
	return CompletedField, nextField(entry.SourceType, field)
}

// nextField returns the field after f in the form order for sourceType, or
// "" when f is last or unknown.
func nextField(sourceType types.SourceType, f types.BibField) types.BibField {
	order := fieldOrder[sourceType]
	for i, candidate := range order {
		if candidate == f && i+1 < len(order) {
			return order[i+1]
		}
	}
	return ""
}

// Record adds entry to its source type's bucket. Incomplete entries are
// skipped, as is a byte-identical repeat of the immediately previously
// recorded entry. An existing record with the same (author, title) pair is
// replaced; the bucket stays capped at ten with the oldest evicted.
func (p *Predictor) Record(entry types.BibEntry) bool {
	if !citation.IsComplete(entry) {
		return false
	}
	if p.hasRecorded && entry == p.lastRecorded {
		return false
	}

	bucket := p.history[entry.SourceType]
	kept := bucket[:0]
	for _, e := range bucket {
		if e.Author == entry.Author && e.Title == entry.Title {
			continue
		}
		kept = append(kept, e)
	}

	bucket = append([]types.BibEntry{entry}, kept...)
	if len(bucket) > historyCap {
		bucket = bucket[:historyCap]
	}
	p.history[entry.SourceType] = bucket

	p.lastRecorded = entry
	p.hasRecorded = true
	return true
}
