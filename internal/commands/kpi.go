package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newKPICommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Dashboard KPI cards",
	}
	cmd.AddCommand(newKPIListCommand(ws))
	cmd.AddCommand(newKPIVisibilityCommand(ws, "show", "Show a hidden KPI card", true))
	cmd.AddCommand(newKPIVisibilityCommand(ws, "hide", "Hide a KPI card", false))
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show every card again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ws.svc.ResetCards(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All cards visible")
			return nil
		},
	})
	return cmd
}

func newKPIListCommand(ws *workspace) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the visible KPI cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tVALUE\tCHANGE\tVISIBLE")
			for _, st := range ws.svc.CardStates(cmd.Context()) {
				if !all && !st.Visible {
					continue
				}
				c := st.Card
				change := fmt.Sprintf("%+.1f%% %s", c.ChangePct, c.HelperText)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Label, c.Value, change, strconv.FormatBool(st.Visible))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden cards")
	return cmd
}

func newKPIVisibilityCommand(ws *workspace, verb, short string, visible bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <card-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ws.svc.SetCardVisible(cmd.Context(), args[0], visible); err != nil {
				return err
			}
			state := "visible"
			if !visible {
				state = "hidden"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Card %s is now %s\n", args[0], state)
			return nil
		},
	}
}
