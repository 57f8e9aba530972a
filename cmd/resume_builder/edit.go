package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the interactive terminal editor",
	Long:  "Edit the resume in a full-screen terminal UI. Every change is saved as it is made.",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	return tui.Run(ctx, ed)
}
