package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// openKV connects the configured storage backend. The returned func releases it.
func openKV(ctx context.Context, cfg config.Config) (storage.KV, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryKV(), noop, nil
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		return database, database.Close, nil
	case config.StoreS3:
		kv, err := storage.ConnectS3(ctx, s3Config(cfg))
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil
	default:
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil
	}
}

// s3Config maps the s3 store settings, including optional static credentials.
func s3Config(cfg config.Config) storage.S3Config {
	return storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Prefix:    cfg.S3Prefix,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	}
}

// openEditor loads the persisted document into an editor on the configured template.
func openEditor(ctx context.Context, cfg config.Config) (*editor.Editor, func(), error) {
	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		log.Printf("[store] using %s backend", cfg.Store)
	}

	ed := editor.New(ctx, document.NewStore(kv))
	ed.SetTemplate(cfg.Template)
	return ed, closeKV, nil
}

// newExporter builds the headless-Chrome exporter from cfg.
func newExporter(cfg config.Config) (*export.Exporter, error) {
	r := export.NewChromeRasterizer(cfg.Verbose)
	r.ViewportWidth = cfg.ViewportWidth
	r.Timeout = time.Duration(cfg.ChromeTimeoutSeconds) * time.Second
	return export.NewExporter(r, cfg.PageFormat, cfg.Verbose)
}

// resolveTemplate returns the --template flag value, or the configured template.
// Unknown names fall back to the default template with a warning.
func resolveTemplate(flag string, cfg config.Config) types.Template {
	name := flag
	if name == "" {
		name = cfg.Template
	}
	t, ok := types.ParseTemplate(name)
	if !ok {
		log.Printf("Warning: unknown template %q, using %s", name, t)
	}
	return t
}
