package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes bounds request bodies; a full document is a few KB.
const maxBodyBytes = 1 << 20

// ScoreResponse represents the response for /score
type ScoreResponse struct {
	Score int `json:"score"`
	Max   int `json:"max"`
}

// TemplateResponse represents the response for /template
type TemplateResponse struct {
	Template   types.Template `json:"template"`
	Recognized bool           `json:"recognized"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetDocument returns the current document, template and score
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.editor.Snapshot())
}

// handleApplyEdit applies one structured edit
func (s *Server) handleApplyEdit(w http.ResponseWriter, r *http.Request) {
	var edit types.Edit
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&edit); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	snap, err := s.editor.Apply(r.Context(), edit)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap)
}

// handleReplaceDocument imports a whole document, checked against the document schema
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	doc, err := document.Decode(data)
	if err != nil {
		s.errorFrom(w, asValidation(err))
		return
	}

	snap, err := s.editor.Replace(r.Context(), doc)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap)
}

// handleResetDocument clears the stored document
func (s *Server) handleResetDocument(w http.ResponseWriter, r *http.Request) {
	snap, err := s.editor.Reset(r.Context())
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap)
}

// handleScore returns the completeness score
func (s *Server) handleScore(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ScoreResponse{Score: s.editor.Score(), Max: editor.MaxScore})
}

// handleGetTemplate returns the active template
func (s *Server) handleGetTemplate(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplateResponse{Template: s.editor.Template(), Recognized: true})
}

// handleSetTemplate selects the active template; unknown names fall back to the default
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	t, ok := s.editor.SetTemplate(req.Template)
	if !ok {
		log.Printf("[server] unknown template %q, using %s", req.Template, t)
	}
	s.jsonResponse(w, http.StatusOK, TemplateResponse{Template: t, Recognized: ok})
}

// templateFor returns the ?template= override, or the active template.
func (s *Server) templateFor(r *http.Request) types.Template {
	if name := r.URL.Query().Get("template"); name != "" {
		t, _ := types.ParseTemplate(name)
		return t
	}
	return s.editor.Template()
}

// handlePreview renders the live preview as HTML
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	snap := s.editor.Snapshot()
	html, err := rendering.RenderHTML(snap.Document, s.templateFor(r))
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// handlePreviewLaTeX renders the document as LaTeX source
func (s *Server) handlePreviewLaTeX(w http.ResponseWriter, r *http.Request) {
	snap := s.editor.Snapshot()
	tex, err := rendering.LaTeX(rendering.Render(snap.Document, s.templateFor(r)), s.latexTemplate)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, tex)
}

// handleExport renders the current snapshot to a one-page PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	// later edits must not affect this export
	snap := s.editor.Snapshot()
	tmpl := s.templateFor(r)
	id := uuid.NewString()

	pdf, err := s.exporter.ExportDocument(export.WithExportID(r.Context(), id), snap.Document, tmpl)
	if err != nil {
		w.Header().Set("X-Export-ID", id)
		s.errorFrom(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.Header().Set("X-Export-ID", id)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// asValidation maps a decode failure to a 400 unless it already is a typed validation error.
func asValidation(err error) error {
	if HTTPStatus(err) == http.StatusBadRequest {
		return err
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
