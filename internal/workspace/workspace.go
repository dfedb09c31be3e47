// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace composes the stores over the per-profile slot storage.
// It loads every slot once at startup and serializes the owning store
// wholesale after every mutation; there is no batching or partial
// persistence. A slot that fails to parse at load time is treated as empty
// and logged; a write that fails leaves in-memory state authoritative and
// raises a sticky, user-visible storage warning.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/pdiddy/outline-engine/internal/export"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/predict"
	"github.com/pdiddy/outline-engine/internal/research"
	"github.com/pdiddy/outline-engine/internal/storage"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Slot keys. The autocomplete history occupies one slot per source type.
const (
	slotThesis        = "thesis"
	slotOutline       = "outline"
	slotResearch      = "research"
	slotAutocomplete  = "autocomplete/"
	storageWarningMsg = "storage is full: changes are kept in memory but no longer saved; free space or export your work"
)

// Workspace owns the thesis text, outline store, research store, and
// autocomplete history for one profile.
type Workspace struct {
	store     *storage.Store
	log       *slog.Logger
	thesis    string
	outline   *outline.Store
	research  *research.Store
	predictor *predict.Predictor
	warning   string
}

// Open opens the profile's slot storage and loads all slots. Missing slots
// start empty; corrupt slots are logged and start empty.
func Open(ctx context.Context, cfg types.StorageConfig, log *slog.Logger) (*Workspace, error) {
	if log == nil {
		log = slog.Default()
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening profile storage: %w", err)
	}

	w := &Workspace{
		store:     store,
		log:       log,
		outline:   outline.New(),
		research:  research.New(),
		predictor: predict.New(),
	}
	w.load(ctx)
	return w, nil
}

// Close releases the profile storage and its lock.
func (w *Workspace) Close() error {
	return w.store.Close()
}

func (w *Workspace) load(ctx context.Context) {
	if raw, ok := w.getSlot(ctx, slotThesis); ok {
		w.thesis = raw
	}

	var points []types.OutlinePoint
	if w.loadJSON(ctx, slotOutline, &points) {
		w.outline.Restore(points)
	}

	var entries []types.ResearchEntry
	if w.loadJSON(ctx, slotResearch, &entries) {
		w.research.Restore(entries)
	}

	for _, st := range types.SourceTypes {
		var bucket []types.BibEntry
		if w.loadJSON(ctx, slotAutocomplete+string(st), &bucket) {
			w.predictor.Restore(st, bucket)
		}
	}
}

func (w *Workspace) getSlot(ctx context.Context, key string) (string, bool) {
	raw, ok, err := w.store.Get(ctx, key)
	if err != nil {
		w.log.Warn("slot read failed; starting empty", "slot", key, "error", err)
		return "", false
	}
	return raw, ok
}

// loadJSON parses a slot into dst. A parse failure treats the slot as
// empty; the corruption is logged but not surfaced to the user.
func (w *Workspace) loadJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := w.getSlot(ctx, key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		w.log.Warn("slot is corrupt; starting empty", "slot", key, "error", err)
		return false
	}
	return true
}

// put writes a slot wholesale. Storage exhaustion (or any other write
// failure) sets the sticky warning and keeps memory authoritative; a
// successful write clears it.
func (w *Workspace) put(ctx context.Context, key, value string) {
	err := w.store.Put(ctx, key, value)
	switch {
	case errors.Is(err, storage.ErrQuotaExceeded):
		w.warning = storageWarningMsg
		w.log.Warn("slot write hit the storage quota", "slot", key)
	case err != nil:
		w.warning = storageWarningMsg
		w.log.Warn("slot write failed", "slot", key, "error", err)
	default:
		w.warning = ""
	}
}

func (w *Workspace) putJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.log.Error("slot serialization failed", "slot", key, "error", err)
		return
	}
	w.put(ctx, key, string(data))
}

// StorageWarning returns the sticky storage warning, or "" when the last
// write succeeded.
func (w *Workspace) StorageWarning() string {
	return w.warning
}

// --- thesis ---

// Thesis returns the thesis statement.
func (w *Workspace) Thesis() string {
	return w.thesis
}

// SetThesis replaces the thesis statement and persists it.
func (w *Workspace) SetThesis(ctx context.Context, text string) {
	w.thesis = text
	w.put(ctx, slotThesis, text)
}

// --- outline ---

// Points returns the flat outline collection.
func (w *Workspace) Points() []types.OutlinePoint {
	return w.outline.Points()
}

// Tree returns the outline as main-point branches.
func (w *Workspace) Tree() []outline.Branch {
	return w.outline.Tree()
}

// AddPoint adds an outline point and persists the outline. Validation
// failures are silent no-ops, mirroring the add action's contract.
func (w *Workspace) AddPoint(ctx context.Context, text string, level types.PointLevel, parentID string) (types.OutlinePoint, bool) {
	p, ok := w.outline.AddPoint(text, level, parentID)
	if !ok {
		return types.OutlinePoint{}, false
	}
	w.putJSON(ctx, slotOutline, w.outline.Points())
	return p, true
}

// DeletePoint removes a point (and a main point's sub-points) and cascades
// deletion of every research entry attached to the removed points, all in
// one operation. It returns the removed point ids.
func (w *Workspace) DeletePoint(ctx context.Context, pointID string) []string {
	removed := w.outline.DeletePoint(pointID)
	if len(removed) == 0 {
		return nil
	}
	w.putJSON(ctx, slotOutline, w.outline.Points())
	if w.research.RemoveByPoints(removed) > 0 {
		w.putJSON(ctx, slotResearch, w.research.All())
	}
	return removed
}

// MovePoint reorders a top-level point and persists the outline.
func (w *Workspace) MovePoint(ctx context.Context, index int, dir outline.Direction) bool {
	if !w.outline.MovePoint(index, dir) {
		return false
	}
	w.putJSON(ctx, slotOutline, w.outline.Points())
	return true
}

// --- research ---

// Entries returns all research entries in insertion order.
func (w *Workspace) Entries() []types.ResearchEntry {
	return w.research.All()
}

// EntriesFor returns the research entries attached to pointID.
func (w *Workspace) EntriesFor(pointID string) iter.Seq[types.ResearchEntry] {
	return w.research.EntriesFor(pointID)
}

// AddEntry adds a research entry and persists the research collection. The
// point must exist at creation time. The entry's bibliography is offered
// to the autocomplete history, which records it only if complete.
func (w *Workspace) AddEntry(ctx context.Context, pointID, text string, bib types.BibEntry) (types.ResearchEntry, bool) {
	if _, ok := w.outline.Find(pointID); !ok {
		return types.ResearchEntry{}, false
	}
	e, ok := w.research.AddEntry(pointID, text, bib)
	if !ok {
		return types.ResearchEntry{}, false
	}
	w.putJSON(ctx, slotResearch, w.research.All())
	w.RecordHistory(ctx, bib)
	return e, true
}

// RemoveEntry removes one research entry by id and persists the collection.
func (w *Workspace) RemoveEntry(ctx context.Context, entryID string) bool {
	if !w.research.RemoveEntry(entryID) {
		return false
	}
	w.putJSON(ctx, slotResearch, w.research.All())
	return true
}

// --- autocomplete ---

// FindMatch returns the most recent history record whose field value
// extends the typed prefix.
func (w *Workspace) FindMatch(sourceType types.SourceType, field types.BibField, typed string) (types.BibEntry, bool) {
	return w.predictor.FindMatch(sourceType, field, typed)
}

// Complete applies a prediction to entry; see predict.Predictor.Complete.
func (w *Workspace) Complete(entry *types.BibEntry, match types.BibEntry, field types.BibField, typed string) (predict.CompletionKind, types.BibField) {
	return w.predictor.Complete(entry, match, field, typed)
}

// RecordHistory offers bib to the autocomplete history and persists the
// source type's bucket when it was recorded.
func (w *Workspace) RecordHistory(ctx context.Context, bib types.BibEntry) bool {
	if !w.predictor.Record(bib) {
		return false
	}
	w.putJSON(ctx, slotAutocomplete+string(bib.SourceType), w.predictor.History(bib.SourceType))
	return true
}

// History returns the autocomplete bucket for sourceType.
func (w *Workspace) History(sourceType types.SourceType) []types.BibEntry {
	return w.predictor.History(sourceType)
}

// --- export ---

// ExportDocument renders the downloadable document in the given style.
func (w *Workspace) ExportDocument(style types.Style) ([]byte, error) {
	return export.Document(w.thesis, w.outline.Points(), w.research.All(), style)
}

// ExportBibTeX renders the distinct bibliographies as BibTeX.
func (w *Workspace) ExportBibTeX() string {
	return export.GenerateBibTeX(w.research.All())
}

// ExportCSL writes the distinct bibliographies as CSL-YAML to out.
func (w *Workspace) ExportCSL(out io.Writer) error {
	return export.FormatCSL(w.research.All(), out)
}
