package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	exportTemplate string
	exportOutDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume to a one-page resume.pdf",
	Long: `Export renders the resume in headless Chrome and writes it to a single A4 (or
Letter) PDF page. Content taller than one page is clipped.

With --template all, both templates are exported concurrently to
<out-dir>/modern/resume.pdf and <out-dir>/classic/resume.pdf.

Requires Chrome/Chromium to be installed.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template: modern, classic or all (default from config)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

// pdfExporter is the part of export.Exporter the command needs.
type pdfExporter interface {
	ExportDocument(ctx context.Context, doc types.ResumeDocument, tmpl types.Template) ([]byte, error)
}

// newPDFExporter is replaced in tests to avoid launching Chrome.
var newPDFExporter = func() (pdfExporter, error) {
	exp, err := newExporter(appConfig)
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// outMu serializes progress output from concurrent exports.
var outMu sync.Mutex

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	exp, err := newPDFExporter()
	if err != nil {
		return err
	}

	outDir := exportOutDir
	if outDir == "" {
		outDir = appConfig.OutDir
	}

	// one snapshot for every template
	doc := ed.Snapshot().Document

	if exportTemplate != "all" {
		tmpl := resolveTemplate(exportTemplate, appConfig)
		return exportOne(ctx, cmd, exp, doc, tmpl, outDir)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, tmpl := range types.Templates {
		g.Go(func() error {
			return exportOne(gctx, cmd, exp, doc, tmpl, filepath.Join(outDir, string(tmpl)))
		})
	}
	return g.Wait()
}

func exportOne(ctx context.Context, cmd *cobra.Command, exp pdfExporter, doc types.ResumeDocument, tmpl types.Template, dir string) error {
	pdf, err := exp.ExportDocument(ctx, doc, tmpl)
	if err != nil {
		return fmt.Errorf("%s: %w", tmpl, err)
	}
	path, err := export.WriteFile(dir, pdf)
	if err != nil {
		return err
	}

	outMu.Lock()
	defer outMu.Unlock()
	if appConfig.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintExport(tmpl, path, len(pdf))
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s template to %s\n", tmpl, path)
	return nil
}
