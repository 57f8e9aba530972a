package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
)

var setIndex int

var setCmd = &cobra.Command{
	Use:   "set SECTION FIELD VALUE",
	Short: "Set a field of personal info or of a list entry",
	Long: `Set a field. For personalInfo no index is needed:

  resume_builder set personalInfo name "Jane Doe"

For list sections (education, workExperience, skills) pass the entry index:

  resume_builder set education institution "MIT" --index 0`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

var addCmd = &cobra.Command{
	Use:   "add SECTION",
	Short: "Append an empty entry to education, workExperience or skills",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove SECTION INDEX",
	Short: "Remove the entry at INDEX from a list section",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

func init() {
	setCmd.Flags().IntVarP(&setIndex, "index", "i", -1, "Entry index for list sections")
	rootCmd.AddCommand(setCmd, addCmd, removeCmd)
}

// applyEdit opens the editor, applies edit and prints the new score.
func applyEdit(cmd *cobra.Command, edit types.Edit) error {
	ctx := cmd.Context()
	ed, closeStore, err := openEditor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	snap, err := ed.Apply(ctx, edit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch edit.Op {
	case types.EditAdd:
		_, _ = fmt.Fprintf(out, "Added %s entry %d\n", edit.Section, snap.Document.Len(edit.Section)-1)
	case types.EditRemove:
		_, _ = fmt.Fprintf(out, "Removed %s entry %d\n", edit.Section, *edit.Index)
	default:
		_, _ = fmt.Fprintf(out, "Updated %s.%s\n", edit.Section, edit.Field)
	}
	_, _ = fmt.Fprintf(out, "Score: %d/%d\n", snap.Score, editor.MaxScore)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	section, err := types.ParseSection(args[0])
	if err != nil {
		return err
	}

	edit := types.Edit{Op: types.EditSet, Section: section, Field: args[1], Value: args[2]}
	// an explicit --index is always passed on, so the editor rejects it for personalInfo
	if cmd.Flags().Changed("index") {
		edit.Index = types.IntPtr(setIndex)
	} else if section.IsList() {
		return fmt.Errorf("--index is required for section %s", section)
	}
	return applyEdit(cmd, edit)
}

func runAdd(cmd *cobra.Command, args []string) error {
	section, err := types.ParseSection(args[0])
	if err != nil {
		return err
	}
	return applyEdit(cmd, types.Edit{Op: types.EditAdd, Section: section})
}

func runRemove(cmd *cobra.Command, args []string) error {
	section, err := types.ParseSection(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[1], err)
	}
	return applyEdit(cmd, types.Edit{Op: types.EditRemove, Section: section, Index: types.IntPtr(index)})
}
