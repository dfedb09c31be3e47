// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/internal/export"
	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// maxImageBytes caps the request body accepted by the OCR extract route.
const maxImageBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// styleParam resolves the citation style from the query string, falling
// back to the server's configured default.
func (s *Server) styleParam(r *http.Request) types.Style {
	if v := r.URL.Query().Get("style"); v != "" {
		return types.Style(v)
	}
	return s.defaultStyle
}

// --- status ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"storage_warning": s.ws.StorageWarning(),
	})
}

// --- thesis ---

func (s *Server) handleGetThesis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"thesis": s.ws.Thesis()})
}

func (s *Server) handlePutThesis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Thesis string `json:"thesis"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.ws.SetThesis(r.Context(), req.Thesis)
	writeJSON(w, http.StatusOK, map[string]string{"thesis": s.ws.Thesis()})
}

// --- outline ---

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"points": s.ws.Points(),
		"tree":   s.ws.Tree(),
	})
}

func (s *Server) handleAddPoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string           `json:"text"`
		Level    types.PointLevel `json:"level"`
		ParentID string           `json:"parentId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	p, ok := s.ws.AddPoint(r.Context(), req.Text, req.Level, req.ParentID)
	if !ok {
		jsonError(w, "point rejected: blank text, unknown level, or missing parent", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeletePoint(w http.ResponseWriter, r *http.Request) {
	pointID := chi.URLParam(r, "pointID")
	removed := s.ws.DeletePoint(r.Context(), pointID)
	if len(removed) == 0 {
		jsonError(w, "point not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleMovePoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index     int    `json:"index"`
		Direction string `json:"direction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	var dir outline.Direction
	switch req.Direction {
	case "up":
		dir = outline.MoveUp
	case "down":
		dir = outline.MoveDown
	default:
		jsonError(w, `direction must be "up" or "down"`, http.StatusBadRequest)
		return
	}
	if !s.ws.MovePoint(r.Context(), req.Index, dir) {
		// Boundary moves are no-ops, not errors.
		writeJSON(w, http.StatusOK, map[string]bool{"moved": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"moved": true})
}

// --- research ---

func (s *Server) handleListResearch(w http.ResponseWriter, r *http.Request) {
	pointID := r.URL.Query().Get("point")
	if pointID == "" {
		writeJSON(w, http.StatusOK, map[string]any{"entries": s.ws.Entries()})
		return
	}
	entries := []types.ResearchEntry{}
	for e := range s.ws.EntriesFor(pointID) {
		entries = append(entries, e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleAddResearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PointID      string         `json:"pointId"`
		Text         string         `json:"text"`
		Bibliography types.BibEntry `json:"bibliography"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	e, ok := s.ws.AddEntry(r.Context(), req.PointID, req.Text, req.Bibliography)
	if !ok {
		jsonError(w, "entry rejected: blank text or unknown point", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleRemoveResearch(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if !s.ws.RemoveEntry(r.Context(), entryID) {
		jsonError(w, "entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- citation ---

func (s *Server) handleCitationPreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bibliography types.BibEntry        `json:"bibliography"`
		Style        types.Style           `json:"style"`
		Context      types.CitationContext `json:"context"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Style == "" {
		req.Style = s.defaultStyle
	}
	if req.Context == "" {
		req.Context = types.ContextBibliography
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"citation": citation.Format(req.Bibliography, req.Style, req.Context),
		"complete": citation.IsComplete(req.Bibliography),
	})
}

// --- autocomplete ---

func (s *Server) handleAutocompleteMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceType types.SourceType `json:"sourceType"`
		Field      types.BibField   `json:"field"`
		Typed      string           `json:"typed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	match, ok := s.ws.FindMatch(req.SourceType, req.Field, req.Typed)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"found": true, "match": match})
}

func (s *Server) handleAutocompleteComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entry types.BibEntry `json:"entry"`
		Match types.BibEntry `json:"match"`
		Field types.BibField `json:"field"`
		Typed string         `json:"typed"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	kind, next := s.ws.Complete(&req.Entry, req.Match, req.Field, req.Typed)
	writeJSON(w, http.StatusOK, map[string]any{
		"entry":     req.Entry,
		"kind":      kind,
		"nextField": next,
	})
}

// --- export ---

func (s *Server) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ws.ExportDocument(s.styleParam(r))
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Write(doc)
}

func (s *Server) handleExportBibTeX(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-bibtex")
	w.Header().Set("Content-Disposition", `attachment; filename="bibliography.bib"`)
	io.WriteString(w, s.ws.ExportBibTeX())
}

func (s *Server) handleExportCSL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="bibliography.yaml"`)
	if err := s.ws.ExportCSL(w); err != nil {
		s.log.Error("csl export failed", "error", err)
	}
}

// --- ocr ---

func (s *Server) handleOCRExtract(w http.ResponseWriter, r *http.Request) {
	if s.gateway == nil {
		jsonError(w, "text extraction is not configured", http.StatusServiceUnavailable)
		return
	}
	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
	if err != nil {
		jsonError(w, "reading image: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(image) == 0 {
		jsonError(w, "empty image", http.StatusBadRequest)
		return
	}

	text, err := s.gateway.Extract(r.Context(), image)
	switch {
	case errors.Is(err, ocr.ErrBusy):
		jsonError(w, "an extraction is already in progress", http.StatusConflict)
	case err != nil:
		// All extraction failures, including the remote quota, surface as
		// the same user-facing failure.
		s.log.Warn("ocr extraction failed", "error", err)
		jsonError(w, "text extraction failed", http.StatusBadGateway)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}
