package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/dashboard"
	"github.com/openaccounting/oadmin/internal/export"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/simulate"
	"github.com/openaccounting/oadmin/internal/synth"
	"github.com/openaccounting/oadmin/internal/table"
)

func newCompaniesCommand(ws *workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Browse and manage client companies",
	}
	cmd.AddCommand(newCompaniesListCommand(ws))
	cmd.AddCommand(newCompaniesShowCommand(ws))
	cmd.AddCommand(newCompaniesLedgerCommand(ws))
	cmd.AddCommand(newCompaniesRecordCommand(ws))
	cmd.AddCommand(newCompaniesExportCommand(ws))
	cmd.AddCommand(newCompaniesCreateCommand(ws))
	cmd.AddCommand(newCompaniesEditCommand(ws))
	cmd.AddCommand(newCompaniesRegisterCommand(ws))
	cmd.AddCommand(newCompaniesClearCommand(ws))
	cmd.AddCommand(newCompaniesClearDatesCommand(ws))
	cmd.AddCommand(newCompaniesDeleteCommand(ws))
	cmd.AddCommand(newCompaniesRefreshCommand(ws))
	cmd.AddCommand(newCompaniesQueuedCommand(ws))
	return cmd
}

func newCompaniesListCommand(ws *workspace) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := ws.svc.Companies(flags.query())
			if err != nil {
				return fmt.Errorf("listing companies: %w", err)
			}
			return printPage(cmd.OutOrStdout(), &flags, page, dashboard.CompanyColumns, "companies")
		},
	}
	flags.bind(cmd)
	return cmd
}

func newCompaniesQueuedCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "queued",
		Short: "List cloud companies waiting too long for a load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd.OutOrStdout(), ws.svc.QueuedCompanies(), dashboard.CompanyColumns)
		},
	}
}

func newCompaniesExportCommand(ws *workspace) *cobra.Command {
	var flags listFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every matching company as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := flags.query()
			q.PageSize = -1
			page, err := ws.svc.Companies(q)
			if err != nil {
				return fmt.Errorf("listing companies: %w", err)
			}

			w, closeOut, err := createOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.WriteCSV(w, page.Rows, dashboard.CompanyColumns); err != nil {
				_ = closeOut()
				return fmt.Errorf("exporting companies: %w", err)
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort in descending order")
	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newCompaniesShowCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a company's derived balances, ageing and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ws.svc.CompanyDetail(args[0])
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), ws.money, d)
			return nil
		},
	}
}

func (w *workspace) money(d decimal.Decimal) string {
	s, err := format.Money(d, w.cfg.Dashboard.Currency)
	if err != nil {
		return d.StringFixed(2)
	}
	return s
}

func printDetail(w io.Writer, money func(decimal.Decimal) string, d dashboard.Detail) {
	c := d.Company
	whole := func(n int64) string { return money(decimal.NewFromInt(n)) }

	fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Reference)
	fmt.Fprintf(w, "  Email:        %s\n", c.Email)
	fmt.Fprintf(w, "  Status:       %s\n", c.Status)
	fmt.Fprintf(w, "  Last load:    %s\n", format.DateOr(c.LastLoadDate, format.DateTime, format.Placeholder))
	fmt.Fprintf(w, "  Load status:  %s\n", d.LoadStatus)
	fmt.Fprintf(w, "  Connector:    %s\n", d.Connector)

	fmt.Fprintln(w, "\nBalances")
	fmt.Fprintf(w, "  Sales ledger:          %s\n", money(d.Balances.SalesLedger))
	fmt.Fprintf(w, "  Notified sales ledger: %s\n", money(d.Balances.NotifiedSalesLedger))
	fmt.Fprintf(w, "  Invoices:              %s\n", money(d.Balances.Invoices))
	fmt.Fprintf(w, "  Credit notes:          %s\n", money(d.Balances.CreditNotes))
	fmt.Fprintf(w, "  Open cash:             %s\n", money(d.Balances.OpenCash))
	fmt.Fprintf(w, "  Purchase ledger:       %s\n", money(c.PurchaseBalance))

	a := d.Ageing
	fmt.Fprintln(w, "\nAgeing")
	fmt.Fprintf(w, "  Not due:  %s\n", whole(a.NotDue))
	fmt.Fprintf(w, "  30 days:  %s\n", whole(a.Days30))
	fmt.Fprintf(w, "  60 days:  %s\n", whole(a.Days60))
	fmt.Fprintf(w, "  90 days:  %s\n", whole(a.Days90))
	fmt.Fprintf(w, "  Over 90:  %s\n", whole(a.Over))

	r := d.Retentions
	fmt.Fprintln(w, "\nRetentions")
	fmt.Fprintf(w, "  Ageing:         %s\n", whole(r.Ageing))
	fmt.Fprintf(w, "  Manual:         %s\n", whole(r.Manual))
	fmt.Fprintf(w, "  Concentration:  %s\n", whole(r.Concentration))
	fmt.Fprintf(w, "  Funding limit:  %s\n", whole(r.Funding))
	fmt.Fprintf(w, "  Contra:         %s\n", whole(r.Contra))
	fmt.Fprintf(w, "  Approved:       %s\n", whole(r.Approved))

	fmt.Fprintln(w, "\nSummary")
	for _, line := range d.Summary.Lines() {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintln(w, "\nMonthly balances (sales / purchase)")
	for _, p := range d.Series {
		fmt.Fprintf(w, "  %-4s %s / %s\n", p.Month, money(p.Sales), money(p.Purchase))
	}

	fmt.Fprintln(w, "\nRegistrations")
	for _, reg := range d.Registrations {
		state := "open"
		if !reg.Open() {
			state = "closed " + format.DateOr(reg.DateClosed, format.DateMedium, format.Placeholder)
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", format.DateOr(reg.DateCreated, format.DateMedium, format.Placeholder), state, reg.Link)
	}
}

var transactionColumns = []export.Column[model.Transaction]{
	{Label: "Document", Value: func(t model.Transaction) string { return t.Document }},
	{Label: "Customer", Value: func(t model.Transaction) string { return t.CustomerName }},
	{Label: "Type", Value: func(t model.Transaction) string { return string(t.Type) }},
	{Label: "Amount", Value: func(t model.Transaction) string { return t.Amount.StringFixed(2) }},
	{Label: "Remaining", Value: func(t model.Transaction) string { return t.Remaining.StringFixed(2) }},
	{Label: "Due", Value: func(t model.Transaction) string { return format.DateOr(t.DueDate, format.DateShort, format.Placeholder) }},
	{Label: "Open", Value: func(t model.Transaction) string { return strconv.FormatBool(t.Open) }},
}

var customerColumns = []export.Column[model.Customer]{
	{Label: "Reference", Value: func(c model.Customer) string { return c.Reference }},
	{Label: "Name", Value: func(c model.Customer) string { return c.Name }},
	{Label: "Outstanding", Value: func(c model.Customer) string { return c.Outstanding.StringFixed(2) }},
	{Label: "Address", Value: func(c model.Customer) string { return c.Address }},
	{Label: "Notified", Value: func(c model.Customer) string { return strconv.FormatBool(c.Notified) }},
}

func newCompaniesLedgerCommand(ws *workspace) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "ledger <id>",
		Short: "Generate a sample sales ledger for a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ws.svc.Ledger(randomSource(seed, ws.svc.Now()), args[0])
			if err != nil {
				return err
			}
			rows, err := model.TransactionListing.Schema.Sort(ledger.Transactions, "documentDate", table.Descending)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Transactions")
			if err := printTable(out, rows, transactionColumns); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nCustomers")
			return printTable(out, ledger.Customers, customerColumns)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func newCompaniesRecordCommand(ws *workspace) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "record <record-id>",
		Short: "Show one ledger item or customer, e.g. 3-tx-4 or 3-cust-2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := ws.svc.LedgerRecord(randomSource(seed, ws.svc.Now()), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if rec.Transaction != nil {
				return printTable(out, []model.Transaction{*rec.Transaction}, transactionColumns)
			}
			return printTable(out, []model.Customer{*rec.Customer}, customerColumns)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed used for the ledger (0 uses the clock)")
	return cmd
}

// randomSource returns a seeded source, or a clock-seeded one for seed 0.
func randomSource(seed uint64, now time.Time) simulate.Source {
	if seed == 0 {
		return simulate.NewTimeSource(now)
	}
	return simulate.NewSource(seed)
}

func newCompaniesCreateCommand(ws *workspace) *cobra.Command {
	var p dashboard.CreateCompanyParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a cloud company, optionally with an onboarding link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, reg, err := ws.svc.CreateCompany(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created company %s: %s (%s)\n", c.ID, c.Name, c.Reference)
			if reg != nil {
				fmt.Fprintf(out, "Registration link: %s\n", reg.Link)
				fmt.Fprintf(out, "Expires: %s\n", format.DateOr(reg.DateExpires, format.DateMedium, format.Placeholder))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "company name (required)")
	cmd.Flags().StringVar(&p.Reference, "reference", "", "company reference (required)")
	cmd.Flags().StringVar(&p.Email, "email", "", "contact email (required)")
	cmd.Flags().StringVar(&p.ExternalReference, "external-ref", "", "reference in the client's own system")
	cmd.Flags().StringVar(&p.Currency, "currency", "", "base currency (default from config)")
	cmd.Flags().BoolVar(&p.CreateRegistration, "registration", false, "issue an onboarding registration link")
	return cmd
}

func newCompaniesEditCommand(ws *workspace) *cobra.Command {
	var p dashboard.UpdateCompanyParams

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a company's name or contact email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := ws.svc.Company(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				p.Name = cur.Name
			}
			if !cmd.Flags().Changed("email") {
				p.Email = cur.Email
			}
			c, err := ws.svc.UpdateCompany(cmd.Context(), cur.ID, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated company %s: %s <%s>\n", c.ID, c.Name, c.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "company name")
	cmd.Flags().StringVar(&p.Email, "email", "", "contact email")
	return cmd
}

func newCompaniesRegisterCommand(ws *workspace) *cobra.Command {
	var p dashboard.RegistrationParams

	cmd := &cobra.Command{
		Use:   "register <id>",
		Short: "Issue a new onboarding registration link for a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ws.svc.CreateRegistration(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registration link: %s\n", reg.Link)
			fmt.Fprintf(out, "Expires: %s\n", format.DateOr(reg.DateExpires, format.DateMedium, format.Placeholder))
			return nil
		},
	}
	cmd.Flags().StringVar(&p.ExternalReference, "external-ref", "", "reference in the client's own system")
	cmd.Flags().StringVar(&p.Currency, "currency", "", "base currency (default from config)")
	return cmd
}

func newCompaniesClearCommand(ws *workspace) *cobra.Command {
	var p dashboard.ClearParams

	cmd := &cobra.Command{
		Use:   "clear <id>",
		Short: "Zero a company's balances back to a snapshot date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.CompanyID = args[0]
			c, err := ws.svc.ClearCompany(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s back to %s\n", c.Name,
				format.DateOr(c.LastLoadDate, format.DateMedium, format.Placeholder))
			return nil
		},
	}
	cmd.Flags().StringVar(&p.SnapshotDate, "to", "", "snapshot date to clear back to (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.ConfirmReference, "confirm", "", "company reference, to confirm (required)")
	_ = cmd.MarkFlagRequired("confirm")
	return cmd
}

func newCompaniesClearDatesCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-dates <id>",
		Short: "List the snapshot dates a company can be cleared back to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := ws.svc.ClearDates(args[0])
			if err != nil {
				return err
			}
			for _, d := range dates {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}

func newCompaniesDeleteCommand(ws *workspace) *cobra.Command {
	var confirmRef string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ws.svc.Company(args[0])
			if err != nil {
				return err
			}
			if err := ws.svc.DeleteCompany(cmd.Context(), c.ID, confirmRef); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&confirmRef, "confirm", "", "company reference, to confirm")
	_ = cmd.MarkFlagRequired("confirm")
	return cmd
}

func newCompaniesRefreshCommand(ws *workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <id>",
		Short: "Request a fresh ledger load for a cloud company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connector, err := ws.svc.RequestRefresh(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			status, err := ws.svc.LoadStatus(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Refresh requested via %s (%s)\n", connector, status)
			return nil
		},
	}
}

func newSnapshotsCommand(ws *workspace) *cobra.Command {
	var from, to, sortKey string
	var desc, asCSV bool

	cmd := &cobra.Command{
		Use:   "snapshots <id>",
		Short: "List a company's weekly ledger snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := table.SortState{}
			if sortKey != "" {
				state = table.SortState{Key: sortKey, Direction: table.Ascending}
				if desc {
					state.Direction = table.Descending
				}
			}

			var snaps []synth.Snapshot
			if from == "" && to == "" {
				all, err := ws.svc.Snapshots(args[0], calendar.Window{}, state)
				if err != nil {
					return err
				}
				snaps, err = ws.svc.Snapshots(args[0], dashboard.DefaultSnapshotWindow(all), state)
				if err != nil {
					return err
				}
			} else {
				window, err := calendar.ParseWindow(from, to)
				if err != nil {
					return err
				}
				snaps, err = ws.svc.Snapshots(args[0], window, state)
				if err != nil {
					return err
				}
			}

			if asCSV {
				return export.WriteCSV(cmd.OutOrStdout(), snaps, dashboard.SnapshotColumns)
			}
			return printTable(cmd.OutOrStdout(), snaps, dashboard.SnapshotColumns)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "earliest load date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest load date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "column to sort by (default loadDate, newest first)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort in descending order")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV")
	return cmd
}
