package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/config"
	"github.com/openaccounting/oadmin/internal/enrich"
)

func newInitCommand() *cobra.Command {
	var name string
	var backend string

	cmd := &cobra.Command{
		Use:         "init [directory]",
		Short:       "Initialize a new oadmin workspace",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipWorkspace: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, backend)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organisation name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&backend, "store", config.BackendSQLite, "settings store backend (memory or sqlite)")

	return cmd
}

func runInit(out io.Writer, dir, name, backend string) error {
	cfg := config.Default(name)
	cfg.Store.Backend = backend
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	// Create directory structure.
	dirs := []string{
		"logs",
		cfg.Enrich.ImportDir,
		filepath.Join(cfg.Enrich.ImportDir, enrich.ProcessedDir),
	}
	if backend == config.BackendSQLite {
		dirs = append(dirs, filepath.Dir(cfg.Store.SQLitePath))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Start the activity log with its header.
	if err := activity.Append(dir, nil); err != nil {
		return fmt.Errorf("creating activity log: %w", err)
	}

	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Enrich.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(out, "Initialized oadmin workspace at %s\n", dir)
	return nil
}
