package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/resume-builder/internal/config"
)

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command in-process against a file store in dataDir.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	appConfig = config.Config{}
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--store", "file", "--data-dir", dataDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}
