package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeExporter records the snapshot it was asked to export.
type fakeExporter struct {
	mu    sync.Mutex
	err   error
	docs  []types.ResumeDocument
	tmpls []types.Template
	ids   []string
}

func (f *fakeExporter) ExportDocument(ctx context.Context, doc types.ResumeDocument, tmpl types.Template) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, doc)
	f.tmpls = append(f.tmpls, tmpl)
	f.ids = append(f.ids, export.ExportID(ctx))
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type testServer struct {
	*Server
	handler  http.Handler
	kv       *storage.MemoryKV
	exporter *fakeExporter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimits(t, &ratelimit.Config{Enabled: false})
}

func newTestServerWithLimits(t *testing.T, rl *ratelimit.Config) *testServer {
	t.Helper()
	kv := storage.NewMemoryKV()
	ed := editor.New(context.Background(), document.NewStore(kv))
	exp := &fakeExporter{}
	s := New(Config{Port: 0, RateLimit: rl}, ed, exp)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, handler: s.Handler(), kv: kv, exporter: exp}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) editor.Snapshot {
	t.Helper()
	var snap editor.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetDocument_Skeleton(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	snap := decodeSnapshot(t, w)
	assert.Equal(t, types.NewDocument(), snap.Document)
	assert.Equal(t, types.TemplateModern, snap.Template)
	assert.Zero(t, snap.Score)

	// lists serialize as [] rather than null
	assert.Contains(t, w.Body.String(), `"education":[]`)
}

func TestApplyEdit_Scenario(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "name", Value: "Jane"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, decodeSnapshot(t, w).Score)

	w = ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "email", Value: "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, decodeSnapshot(t, w).Score)

	w = ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditAdd, Section: types.SectionSkills})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionSkills, Index: types.IntPtr(0), Field: "name", Value: "Go"})
	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, 30, snap.Score)
	assert.Equal(t, []types.SkillEntry{{Name: "Go"}}, snap.Document.Skills)

	w = ts.do(t, http.MethodGet, "/score", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":30,"max":100}`, w.Body.String())

	// persisted under resumeData
	stored, err := ts.kv.Get(context.Background(), document.StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"Jane"`)
}

func TestApplyEdit_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"op":`},
		{"unknown field", `{"op":"add","section":"skills","extra":1}`},
		{"unknown op", types.Edit{Op: "rename", Section: types.SectionSkills}},
		{"unknown section", types.Edit{Op: types.EditAdd, Section: "hobbies"}},
		{"set without field", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo}},
		{"wrong field", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "year", Value: "x"}},
		{"remove without index", types.Edit{Op: types.EditRemove, Section: types.SectionSkills}},
		{"index out of range", types.Edit{Op: types.EditRemove, Section: types.SectionSkills, Index: types.IntPtr(3)}},
		{"add to record section", types.Edit{Op: types.EditAdd, Section: types.SectionPersonalInfo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(t, http.MethodPost, "/document/edits", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])

			// nothing was written
			_, err := ts.kv.Get(context.Background(), document.StorageKey)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestReplaceDocument(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/document", `{"personalInfo":{"name":"Ada"},"skills":[{"name":"Math"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	snap := decodeSnapshot(t, w)
	assert.Equal(t, "Ada", snap.Document.PersonalInfo.Name)
	assert.Equal(t, []types.EducationEntry{}, snap.Document.Education)
	assert.Equal(t, 20, snap.Score)
}

func TestReplaceDocument_Invalid(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/document", `{"skills":"Go"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/document", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, types.NewDocument(), ts.editor.Snapshot().Document)
}

func TestResetDocument(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "name", Value: "Jane"})

	w := ts.do(t, http.MethodDelete, "/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.NewDocument(), decodeSnapshot(t, w).Document)

	_, err := ts.kv.Get(context.Background(), document.StorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetTemplate(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/template", types.TemplateRequest{Template: "classic"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"template":"classic","recognized":true}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/template", nil)
	assert.JSONEq(t, `{"template":"classic","recognized":true}`, w.Body.String())

	w = ts.do(t, http.MethodPut, "/template", types.TemplateRequest{Template: "fancy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"template":"modern","recognized":false}`, w.Body.String())

	w = ts.do(t, http.MethodPut, "/template", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "name", Value: "Jane <Doe>"})

	w := ts.do(t, http.MethodGet, "/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `data-template="modern"`)
	assert.Contains(t, w.Body.String(), "Jane &lt;Doe&gt;")

	w = ts.do(t, http.MethodGet, "/preview?template=classic", nil)
	assert.Contains(t, w.Body.String(), `data-template="classic"`)

	w = ts.do(t, http.MethodGet, "/preview?template=fancy", nil)
	assert.Contains(t, w.Body.String(), `data-template="modern"`)
}

func TestPreviewLaTeX(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "name", Value: "R&D"})

	w := ts.do(t, http.MethodGet, "/preview.tex?template=classic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/x-tex"))
	assert.Contains(t, w.Body.String(), `R\&D`)
	assert.Contains(t, w.Body.String(), `\begin{center}`)
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/document/edits", types.Edit{Op: types.EditSet, Section: types.SectionPersonalInfo, Field: "name", Value: "Jane"})
	ts.do(t, http.MethodPut, "/template", types.TemplateRequest{Template: "classic"})

	w := ts.do(t, http.MethodPost, "/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="resume.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 fake", w.Body.String())

	require.Len(t, ts.exporter.docs, 1)
	assert.Equal(t, "Jane", ts.exporter.docs[0].PersonalInfo.Name)
	assert.Equal(t, types.TemplateClassic, ts.exporter.tmpls[0])
	assert.Equal(t, w.Header().Get("X-Export-ID"), ts.exporter.ids[0])

	w = ts.do(t, http.MethodPost, "/export?template=modern", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.TemplateModern, ts.exporter.tmpls[1])
}

func TestExport_Failure(t *testing.T) {
	ts := newTestServer(t)
	ts.exporter.err = &export.ExportError{Stage: export.StageRasterize, Message: "failed to capture resume", Cause: errors.New("chrome not found")}

	w := ts.do(t, http.MethodPost, "/export", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "chrome not found")
}

func TestExport_NotConfigured(t *testing.T) {
	ed := editor.New(context.Background(), document.NewStore(storage.NewMemoryKV()))
	s := New(Config{RateLimit: &ratelimit.Config{Enabled: false}}, ed, nil)
	defer s.rateLimiter.Stop()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/export", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPatch, "/document", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodOptions, "/document/edits", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimit_Export(t *testing.T) {
	ts := newTestServerWithLimits(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/export", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})

	w := ts.do(t, http.MethodPost, "/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = ts.do(t, http.MethodPost, "/export", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// other routes are unaffected
	w = ts.do(t, http.MethodGet, "/document", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, ts.exporter.docs, 1)
}

func TestShutdown(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, ts.Shutdown(ctx))
}
