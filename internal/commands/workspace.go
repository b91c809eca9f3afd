package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/config"
	"github.com/openaccounting/oadmin/internal/dashboard"
	"github.com/openaccounting/oadmin/internal/kv"
	"github.com/openaccounting/oadmin/internal/log"
	"github.com/openaccounting/oadmin/internal/settings"
)

// workspace is the opened state shared by every subcommand of one run.
type workspace struct {
	dir string

	root   string
	cfg    *config.Config
	logger *log.Logger
	store  kv.Store
	svc    *dashboard.Service
}

// open reads <dir>/.env and <dir>/oadmin.yaml, then wires the settings store,
// activity log and dashboard service. A missing config file means defaults.
func (w *workspace) open(stderr io.Writer) error {
	root, err := filepath.Abs(w.dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	w.root = root

	if err := config.LoadEnvFile(root); err != nil {
		return err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default("")
	case err != nil:
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.cfg = cfg

	level, _ := log.ParseLevel(cfg.Log.Level)
	w.logger = log.New(log.Config{Level: level, Component: log.ComponentCLI, Output: stderr})

	store, err := openStore(root, cfg, w.logger)
	if err != nil {
		return err
	}
	w.store = store

	w.svc = dashboard.NewService(dashboard.Params{
		Config:   cfg,
		Settings: settings.NewStore(store, w.logger),
		Activity: activity.New(root),
		Logger:   w.logger,
	})
	return nil
}

func openStore(root string, cfg *config.Config, logger *log.Logger) (kv.Store, error) {
	if cfg.Store.Backend != config.BackendSQLite {
		return kv.NewMemoryStore(), nil
	}
	path := config.ResolvePath(root, cfg.Store.SQLitePath)
	store, err := kv.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}
	logger.WithComponent(log.ComponentStorage).Debug("settings store opened",
		log.FieldPath, path, "schema_version", store.SchemaVersion())
	return store, nil
}

func (w *workspace) close() error {
	if w.store == nil {
		return nil
	}
	err := w.store.Close()
	w.store = nil
	return err
}

// importDir is where enrichment CSVs are picked up from.
func (w *workspace) importDir() string {
	return config.ResolvePath(w.root, w.cfg.Enrich.ImportDir)
}
