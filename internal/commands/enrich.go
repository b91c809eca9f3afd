package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/enrich"
	"github.com/openaccounting/oadmin/internal/log"
)

func newEnrichCommand(ws *workspace) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "enrich [file]",
		Short: "Match enrichment CSV rows to companies by reference",
		Long: "Reads reference,key,value rows and matches them to companies by reference.\n" +
			"Without a file, every CSV in the import directory is read and moved to processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rows, skipped, err := enrich.ReadFile(args[0])
				if err != nil {
					return err
				}
				logSkipped(ws, args[0], skipped)
				runEnrich(cmd, ws, out, filepath.Base(args[0]), rows)
				return nil
			}

			dir := ws.importDir()
			files, err := enrich.Scan(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(out, "No CSV files in %s\n", dir)
				return nil
			}

			logger := ws.logger.WithComponent(log.ComponentEnrich)
			for _, f := range files {
				rows, skipped, err := enrich.ReadFile(f.Path)
				if err != nil {
					return err
				}
				logSkipped(ws, f.Path, skipped)
				runEnrich(cmd, ws, out, f.Name, rows)
				if keep {
					continue
				}
				if err := enrich.MarkProcessed(dir, f.Name); err != nil {
					return err
				}
				logger.Debug("file processed", log.FieldPath, f.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "leave files in the import directory")
	return cmd
}

func logSkipped(ws *workspace, path string, skipped int) {
	if skipped == 0 {
		return
	}
	ws.logger.WithComponent(log.ComponentEnrich).Warn("skipped short lines",
		log.FieldPath, path, log.FieldCount, skipped)
}

func runEnrich(cmd *cobra.Command, ws *workspace, out io.Writer, source string, rows []enrich.Row) {
	matches, unmatched := ws.svc.Enrich(cmd.Context(), source, rows)

	fmt.Fprintf(out, "%s: %d matched, %d unmatched\n", source, len(matches), len(unmatched))
	for _, m := range matches {
		keys := make([]string, 0, len(m.Values))
		for k := range m.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + m.Values[k]
		}
		fmt.Fprintf(out, "  %s %s: %s\n", m.Company.Reference, m.Company.Name, strings.Join(pairs, ", "))
	}
	if len(unmatched) > 0 {
		fmt.Fprintf(out, "  unmatched: %s\n", strings.Join(unmatched, ", "))
	}
}
