package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/dashboard"
	"github.com/openaccounting/oadmin/internal/model"
)

func newRatesCommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Exchange rates",
	}
	cmd.AddCommand(newRatesListCommand(ws))
	cmd.AddCommand(newRatesImportCommand(ws))
	cmd.AddCommand(newRatesAddCommand(ws))
	cmd.AddCommand(newRatesEditCommand(ws))
	cmd.AddCommand(newRatesDeleteCommand(ws))
	return cmd
}

func newRatesListCommand(ws *workspace) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exchange rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := ws.svc.ExchangeRates(flags.query())
			if err != nil {
				return fmt.Errorf("listing rates: %w", err)
			}
			return printPage(cmd.OutOrStdout(), &flags, page, dashboard.ExchangeRateColumns, "rates")
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRatesImportCommand(ws *workspace) *cobra.Command {
	var source string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import current rates from a provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := model.RateSource(strings.ToLower(strings.TrimSpace(source)))
			fresh, err := ws.svc.ImportRates(cmd.Context(), randomSource(seed, ws.svc.Now()), src)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d rates from %s\n", len(fresh), src.Label())
			return printTable(out, fresh, dashboard.ExchangeRateColumns)
		},
	}
	cmd.Flags().StringVar(&source, "source", string(model.SourceLendscape),
		fmt.Sprintf("rate provider (%s or %s)", model.SourceLendscape, model.SourceOpenExchangeRates))
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

// rateFlags are the editable fields of a rate as given on the command line.
type rateFlags struct {
	from, to, rate, source string
}

func (f *rateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "currency converted from, e.g. GBP")
	cmd.Flags().StringVar(&f.to, "to", "", "currency converted to, e.g. USD")
	cmd.Flags().StringVar(&f.rate, "rate", "", "units of --to per unit of --from")
	cmd.Flags().StringVar(&f.source, "source", "", "where the rate came from (default manual)")
}

// params overlays the flags that were set onto base.
func (f *rateFlags) params(cmd *cobra.Command, base dashboard.RateParams) (dashboard.RateParams, error) {
	p := base
	if cmd.Flags().Changed("from") {
		p.From = f.from
	}
	if cmd.Flags().Changed("to") {
		p.To = f.to
	}
	if cmd.Flags().Changed("source") {
		p.Source = model.RateSource(strings.ToLower(strings.TrimSpace(f.source)))
	}
	if cmd.Flags().Changed("rate") {
		r, err := decimal.NewFromString(strings.TrimSpace(f.rate))
		if err != nil {
			return p, fmt.Errorf("%w: rate %q is not a number", dashboard.ErrInvalid, f.rate)
		}
		p.Rate = r
	}
	return p, nil
}

func newRatesAddCommand(ws *workspace) *cobra.Command {
	var flags rateFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params(cmd, dashboard.RateParams{})
			if err != nil {
				return err
			}
			r, err := ws.svc.AddRate(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added rate %s: %s %s\n", r.ID, r.Pair(), r.Rate.String())
			return nil
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newRatesEditCommand(ws *workspace) *cobra.Command {
	var flags rateFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an exchange rate; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := ws.svc.ExchangeRate(args[0])
			if err != nil {
				return err
			}
			p, err := flags.params(cmd, dashboard.RateParams{From: cur.From, To: cur.To, Rate: cur.Rate, Source: cur.Source})
			if err != nil {
				return err
			}
			r, err := ws.svc.UpdateRate(cmd.Context(), cur.ID, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated rate %s: %s %s (%s)\n", r.ID, r.Pair(), r.Rate.String(), r.Source.Label())
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRatesDeleteCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an exchange rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ws.svc.ExchangeRate(args[0])
			if err != nil {
				return err
			}
			if err := ws.svc.DeleteRate(cmd.Context(), r.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted rate %s: %s\n", r.ID, r.Pair())
			return nil
		},
	}
}

func newConnectionsCommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Cloud accounting connections",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List in-flight extractions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := ws.svc.CloudConnections(flags.query())
			if err != nil {
				return fmt.Errorf("listing connections: %w", err)
			}
			out := cmd.OutOrStdout()
			if err := printPage(out, &flags, page, dashboard.CloudConnectionColumns(ws.svc.Now()), "connections"); err != nil {
				return err
			}
			if !flags.csv {
				fmt.Fprintf(out, "Extracting: %.0f%%\n", ws.svc.Progress())
			}
			return nil
		},
	}
	flags.bind(list)
	cmd.AddCommand(list)
	return cmd
}

func newExtractsCommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extracts",
		Short: "Received ledger extract files",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List extract files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := ws.svc.ExtractFiles(flags.query())
			if err != nil {
				return fmt.Errorf("listing extracts: %w", err)
			}
			return printPage(cmd.OutOrStdout(), &flags, page, dashboard.ExtractFileColumns, "extracts")
		},
	}
	flags.bind(list)
	cmd.AddCommand(list)
	return cmd
}

func newOptionsCommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Platform configuration options",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List configuration options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := ws.svc.ConfigOptions(flags.query())
			if err != nil {
				return fmt.Errorf("listing options: %w", err)
			}
			return printPage(cmd.OutOrStdout(), &flags, page, dashboard.ConfigOptionColumns, "options")
		},
	}
	flags.bind(list)
	cmd.AddCommand(list)
	cmd.AddCommand(newOptionsAddCommand(ws))
	cmd.AddCommand(newOptionsEditCommand(ws))
	cmd.AddCommand(newOptionsDeleteCommand(ws))
	return cmd
}

func bindOptionFlags(cmd *cobra.Command, p *dashboard.OptionParams) {
	cmd.Flags().StringVar(&p.Name, "name", "", "option name")
	cmd.Flags().StringVar(&p.Value, "value", "", "option value")
	cmd.Flags().StringVar(&p.Description, "description", "", "what the option controls")
}

func newOptionsAddCommand(ws *workspace) *cobra.Command {
	var p dashboard.OptionParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a configuration option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := ws.svc.AddOption(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added option %s: %s=%s\n", o.ID, o.Name, o.Value)
			return nil
		},
	}
	bindOptionFlags(cmd, &p)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newOptionsEditCommand(ws *workspace) *cobra.Command {
	var p dashboard.OptionParams

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a configuration option; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := ws.svc.ConfigOption(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				p.Name = cur.Name
			}
			if !cmd.Flags().Changed("value") {
				p.Value = cur.Value
			}
			o, err := ws.svc.UpdateOption(cmd.Context(), cur.ID, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated option %s: %s=%s\n", o.ID, o.Name, o.Value)
			return nil
		},
	}
	bindOptionFlags(cmd, &p)
	return cmd
}

func newOptionsDeleteCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a configuration option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := ws.svc.ConfigOption(args[0])
			if err != nil {
				return err
			}
			if err := ws.svc.DeleteOption(cmd.Context(), o.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted option %s: %s\n", o.ID, o.Name)
			return nil
		},
	}
}
