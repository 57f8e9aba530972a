package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var (
	previewTemplate string
	previewFormat   string
	previewOut      string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the resume as HTML, LaTeX or plain text",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", "", "Template: modern or classic (default from config)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "text", "Output format: html, latex or text")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ed, closeStore, err := openEditor(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	view := rendering.Render(ed.Snapshot().Document, resolveTemplate(previewTemplate, appConfig))

	var content string
	switch previewFormat {
	case "html":
		content, err = rendering.HTML(view)
	case "latex", "tex":
		content, err = rendering.LaTeX(view, appConfig.LaTeXTemplate)
	case "text", "":
		content = rendering.Text(view)
	default:
		return fmt.Errorf("unknown format %q (want html, latex or text)", previewFormat)
	}
	if err != nil {
		return err
	}

	if previewOut == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(previewOut, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", previewOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s preview to %s\n", view.Template, previewOut)
	return nil
}
