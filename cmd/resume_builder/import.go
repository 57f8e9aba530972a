package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the document with a JSON file (as printed by show --json or stored under resumeData)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	doc, err := document.Decode(unwrapSnapshot(data))
	if err != nil {
		return fmt.Errorf("invalid resume document %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	snap, err := ed.Replace(ctx, doc)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\nScore: %d/%d\n", args[0], snap.Score, editor.MaxScore)
	return nil
}

// unwrapSnapshot accepts either a bare document or show --json output.
func unwrapSnapshot(data []byte) []byte {
	var snap struct {
		Document json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(data, &snap); err == nil && len(snap.Document) > 0 {
		return snap.Document
	}
	return data
}
