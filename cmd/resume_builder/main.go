// Package main provides the resume_builder CLI: edit, preview, export and serve a resume document.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

var (
	configPath  string
	storeFlag   string
	dataDirFlag string
	dbURLFlag   string
	verboseFlag bool

	// appConfig is resolved once per invocation by loadAppConfig.
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Build a resume and export it as a one-page PDF",
	Long: `resume_builder keeps a single resume document (personal info, education,
work experience, skills), scores its completeness, previews it in a modern or
classic template and exports it to resume.pdf.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Storage backend: file, memory, postgres or s3")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory for the file store")
	rootCmd.PersistentFlags().StringVar(&dbURLFlag, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print detailed debug information")
}

// loadAppConfig layers config file, flags, environment and defaults, then validates.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Flags override config file
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if dbURLFlag != "" {
		cfg.DatabaseURL = dbURLFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
