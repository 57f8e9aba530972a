package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/observability"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the completeness score (0-100)",
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ed, closeStore, err := openEditor(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	snap := ed.Snapshot()
	if appConfig.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintScore(snap.Document, snap.Score)
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d %s\n", snap.Score, editor.MaxScore, observability.ScoreBar(snap.Score))
	return nil
}
