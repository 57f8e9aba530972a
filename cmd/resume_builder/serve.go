package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the document, live preview and PDF export over REST.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ed, closeStore, err := openEditor(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	exp, err := newExporter(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	log.Printf("Using %s store, %s template", appConfig.Store, ed.Template())
	srv := server.New(server.Config{
		Port:          servePort,
		LaTeXTemplate: appConfig.LaTeXTemplate,
	}, ed, exp)

	return srv.Start()
}
