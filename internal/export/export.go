// Package export writes table rows as CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Column renders one CSV column of a record.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// WriteCSV writes a header of column labels followed by one line per row.
func WriteCSV[T any](w io.Writer, rows []T, columns []Column[T]) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]string, len(columns))
	for i, row := range rows {
		for j, c := range columns {
			rec[j] = c.Value(row)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
