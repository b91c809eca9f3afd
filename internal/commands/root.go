package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/buildinfo"
)

// skipWorkspace marks commands that run without opening the workspace.
const skipWorkspace = "skip-workspace"

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	ws := &workspace{}

	rootCmd := &cobra.Command{
		Use:     "oadmin",
		Short:   "Open Accounting platform administration",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipWorkspace] == "true" {
				return nil
			}
			return ws.open(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ws.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ws.dir, "dir", ".", "workspace directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLoginCommand(ws))
	rootCmd.AddCommand(newCompaniesCommand(ws))
	rootCmd.AddCommand(newSnapshotsCommand(ws))
	rootCmd.AddCommand(newRatesCommand(ws))
	rootCmd.AddCommand(newConnectionsCommand(ws))
	rootCmd.AddCommand(newExtractsCommand(ws))
	rootCmd.AddCommand(newOptionsCommand(ws))
	rootCmd.AddCommand(newKPICommand(ws))
	rootCmd.AddCommand(newEnrichCommand(ws))
	rootCmd.AddCommand(newActivityCommand(ws))

	return rootCmd
}
