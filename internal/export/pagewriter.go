package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Supported page formats.
const (
	PageA4     = "A4"
	PageLetter = "Letter"
)

// PageWriter lays an image onto a single page and serializes the document.
// Units are those of the underlying page (millimetres for FPDFWriter).
type PageWriter interface {
	PageSize() (w, h float64)
	PlaceImage(img *Image, x, y, w, h float64) error
	Output(w io.Writer) error
}

// FPDFWriter is a one-page portrait PDF backed by fpdf.
type FPDFWriter struct {
	pdf *fpdf.Fpdf
}

// NewFPDFWriter creates a portrait page in the given format (A4 when empty).
func NewFPDFWriter(format string) (*FPDFWriter, error) {
	if format == "" {
		format = PageA4
	}
	if !strings.EqualFold(format, PageA4) && !strings.EqualFold(format, PageLetter) {
		return nil, fmt.Errorf("unsupported page format: %s", format)
	}

	pdf := fpdf.New("P", "mm", format, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return &FPDFWriter{pdf: pdf}, nil
}

// PageSize implements PageWriter.
func (f *FPDFWriter) PageSize() (float64, float64) {
	return f.pdf.GetPageSize()
}

// PlaceImage implements PageWriter. Content past the page edge is clipped.
func (f *FPDFWriter) PlaceImage(img *Image, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	f.pdf.RegisterImageOptionsReader("resume", opts, bytes.NewReader(img.PNG))
	f.pdf.ImageOptions("resume", x, y, w, h, false, opts, 0, "")
	return f.pdf.Error()
}

// Output implements PageWriter.
func (f *FPDFWriter) Output(w io.Writer) error {
	return f.pdf.Output(w)
}
