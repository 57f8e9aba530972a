package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored document and start from an empty resume",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := ed.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Resume cleared")
	return nil
}
