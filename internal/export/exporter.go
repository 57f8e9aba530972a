package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// FileName is the name every exported PDF is written under.
const FileName = "resume.pdf"

// Exporter rasterizes a resume page and writes it onto a single PDF page.
type Exporter struct {
	Rasterizer Rasterizer
	// NewPage returns a fresh page for each export.
	NewPage func() (PageWriter, error)
	Verbose bool
}

// NewExporter wires a Chrome rasterizer to fpdf pages of the given format.
func NewExporter(r Rasterizer, format string, verbose bool) (*Exporter, error) {
	if _, err := NewFPDFWriter(format); err != nil {
		return nil, err
	}
	return &Exporter{
		Rasterizer: r,
		NewPage: func() (PageWriter, error) {
			return NewFPDFWriter(format)
		},
		Verbose: verbose,
	}, nil
}

type exportIDKey struct{}

// WithExportID tags ctx with the id used to log an export.
func WithExportID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, exportIDKey{}, id)
}

// ExportID returns the id attached by WithExportID, or a new one.
func ExportID(ctx context.Context) string {
	if id, ok := ctx.Value(exportIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// ImageHeight scales an image to pageWidth and returns its height on the page.
func ImageHeight(img *Image, pageWidth float64) float64 {
	return float64(img.Height) * pageWidth / float64(img.Width)
}

// Export converts a rendered HTML page into PDF bytes. The image is placed at
// the page origin at full page width; anything taller than the page is clipped.
// Nothing is returned on failure.
func (e *Exporter) Export(ctx context.Context, html string) ([]byte, error) {
	id := ExportID(ctx)
	if e.Verbose {
		log.Printf("[export %s] rasterizing %d bytes of html", id, len(html))
	}

	img, err := e.Rasterizer.Rasterize(ctx, html)
	if err != nil {
		return nil, &ExportError{Stage: StageRasterize, Message: "failed to capture resume", Cause: err}
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, &ExportError{Stage: StageRasterize, Message: "captured image is empty"}
	}

	page, err := e.NewPage()
	if err != nil {
		return nil, &ExportError{Stage: StagePlace, Message: "failed to create page", Cause: err}
	}
	pageW, pageH := page.PageSize()
	h := ImageHeight(img, pageW)
	if h > pageH {
		log.Printf("[export %s] content is %.1fmm tall, clipped to %.1fmm page", id, h, pageH)
	}
	if err := page.PlaceImage(img, 0, 0, pageW, h); err != nil {
		return nil, &ExportError{Stage: StagePlace, Message: "failed to place image", Cause: err}
	}

	var buf bytes.Buffer
	if err := page.Output(&buf); err != nil {
		return nil, &ExportError{Stage: StageWrite, Message: "failed to write pdf", Cause: err}
	}
	out := buf.Bytes()

	if err := VerifyPDF(out); err != nil {
		return nil, &ExportError{Stage: StageVerify, Message: "output is not a valid pdf", Cause: err}
	}

	if e.Verbose {
		log.Printf("[export %s] wrote %d byte pdf (%dx%d image)", id, len(out), img.Width, img.Height)
	}
	return out, nil
}

// ExportDocument renders doc in tmpl and exports it. The document is the
// caller's snapshot; later edits do not affect the result.
func (e *Exporter) ExportDocument(ctx context.Context, doc types.ResumeDocument, tmpl types.Template) ([]byte, error) {
	html, err := rendering.RenderHTML(doc, tmpl)
	if err != nil {
		return nil, &ExportError{Stage: StageRender, Message: "failed to render html", Cause: err}
	}
	return e.Export(ctx, html)
}

// VerifyPDF checks that b parses as a PDF with exactly one page.
func VerifyPDF(b []byte) (err error) {
	// the reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return err
	}
	if n := r.NumPage(); n != 1 {
		return fmt.Errorf("expected 1 page, got %d", n)
	}
	return nil
}

// WriteFile writes pdf to dir/resume.pdf atomically and returns the path.
func WriteFile(dir string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("refusing to write empty pdf")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := storage.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
