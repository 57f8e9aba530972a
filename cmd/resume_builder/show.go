package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current resume document and its score",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the document, template and score as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	snap := ed.Snapshot()
	out := cmd.OutOrStdout()

	if showJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	p := observability.NewPrinter(out)
	p.PrintDocument(snap.Document)
	p.PrintScore(snap.Document, snap.Score)
	return nil
}
