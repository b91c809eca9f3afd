package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openaccounting/oadmin/internal/export"
	"github.com/openaccounting/oadmin/internal/table"
)

// listFlags are the search, sort and paging flags shared by list commands.
type listFlags struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	csv      bool
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().StringVar(&f.sort, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "write the page as CSV")
}

func (f *listFlags) query() table.Query {
	q := table.Query{
		Search:   f.search,
		Page:     f.page,
		PageSize: f.pageSize,
	}
	if f.sort != "" {
		q.Sort = table.SortState{Key: f.sort, Direction: table.Ascending}
		if f.desc {
			q.Sort.Direction = table.Descending
		}
	}
	return q
}

// printPage writes one page of rows as an aligned table, or as CSV when
// asked, followed by a paging footer.
func printPage[T any](w io.Writer, f *listFlags, page table.Page[T], columns []export.Column[T], noun string) error {
	if f.csv {
		return export.WriteCSV(w, page.Rows, columns)
	}
	if err := printTable(w, page.Rows, columns); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d %s)\n", page.Page, page.TotalPages, page.Total, noun)
	return nil
}

func printTable[T any](w io.Writer, rows []T, columns []export.Column[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	labels := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = strings.ToUpper(c.Label)
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			cells[i] = c.Value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// createOutput opens path for writing, or returns w when path is empty or "-".
func createOutput(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}
