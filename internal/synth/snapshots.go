package synth

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/table"
)

const (
	snapshotCount = 8
	// isoMillis matches the millisecond ISO timestamps the dashboard stores.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// Snapshot is one weekly load of a company's sales ledger.
type Snapshot struct {
	LoadDate        string
	SalesBalance    decimal.Decimal
	PreviousBalance decimal.Decimal

	NewItemCount    int64
	NewInvoiceTotal int64
	NewCreditTotal  int64
	NewPaymentTotal int64

	InvoiceTotal    int64
	DebitAdjTotal   int64
	PaymentTotal    int64
	CreditNoteTotal int64
	CreditAdjTotal  int64

	NewItemAmount     int64
	ChangedItemAmount int64
	ClosedItemAmount  int64
	DeletedItemAmount int64
}

// SnapshotListing sorts and windows snapshots.
var SnapshotListing = table.Listing[Snapshot]{
	Schema: table.Schema[Snapshot]{
		"loadDate":        table.Date(func(s Snapshot) string { return s.LoadDate }),
		"salesBalance":    table.Number(func(s Snapshot) float64 { return s.SalesBalance.InexactFloat64() }),
		"previousBalance": table.Number(func(s Snapshot) float64 { return s.PreviousBalance.InexactFloat64() }),
		"newItemCount":    table.Number(func(s Snapshot) float64 { return float64(s.NewItemCount) }),
		"newInvoiceTotal": table.Number(func(s Snapshot) float64 { return float64(s.NewInvoiceTotal) }),
		"newCreditTotal":  table.Number(func(s Snapshot) float64 { return float64(s.NewCreditTotal) }),
		"newPaymentTotal": table.Number(func(s Snapshot) float64 { return float64(s.NewPaymentTotal) }),
	},
	DefaultSort: table.SortState{Key: "loadDate", Direction: table.Descending},
}

func whole(d decimal.Decimal) int64 {
	return roundHalfUp(d).IntPart()
}

// Snapshots derives eight weekly snapshots ending at the company's last load,
// newest first. A company whose load date does not parse has no history.
func Snapshots(c model.Company) []Snapshot {
	base, err := calendar.Parse(c.LastLoadDate)
	if err != nil {
		return nil
	}

	items := make([]Snapshot, 0, snapshotCount)
	prev := maxZero(round2(c.SalesBalance.Mul(pct("0.9"))))
	for i := 0; i < snapshotCount; i++ {
		step := decimal.NewFromInt(int64(i%3 - 1)).Mul(pct("0.03"))
		bal := maxZero(round2(prev.Mul(decimal.NewFromInt(1).Add(step))))
		delta := bal.Sub(prev)
		abs := delta.Abs()

		newItems := abs.Div(decimal.NewFromInt(1000)).Floor().IntPart()
		items = append(items, Snapshot{
			LoadDate:        base.AddDate(0, 0, -7*i).Format(isoMillis),
			SalesBalance:    bal,
			PreviousBalance: prev,

			NewItemCount:    max(newItems, 1),
			NewInvoiceTotal: whole(delta.Mul(pct("0.6"))),
			NewCreditTotal:  whole(abs.Mul(pct("0.2"))),
			NewPaymentTotal: whole(abs.Mul(pct("0.3"))),

			InvoiceTotal:    max(whole(bal.Mul(pct("0.85"))), 0),
			DebitAdjTotal:   whole(bal.Mul(pct("0.02"))),
			PaymentTotal:    -whole(bal.Mul(pct("0.15"))),
			CreditNoteTotal: -whole(bal.Mul(pct("0.05"))),
			CreditAdjTotal:  -whole(bal.Mul(pct("0.01"))),

			NewItemAmount:     whole(abs.Mul(pct("0.6"))),
			ChangedItemAmount: whole(abs.Mul(pct("0.25"))),
			ClosedItemAmount:  whole(abs.Mul(pct("0.1"))),
			DeletedItemAmount: whole(abs.Mul(pct("0.05"))),
		})
		prev = bal
	}

	sorted, err := SnapshotListing.Schema.Sort(items, "loadDate", table.Descending)
	if err != nil {
		return items
	}
	return sorted
}

// SeriesPoint is one month of balances.
type SeriesPoint struct {
	Month    string
	Sales    decimal.Decimal
	Purchase decimal.Decimal
}

// MonthlySeries returns twelve months of balances ending in now's month,
// oldest first.
func MonthlySeries(c model.Company, now time.Time) []SeriesPoint {
	out := make([]SeriesPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		d := now.AddDate(0, -i, 0)
		salesFactor := pct("0.8").Add(decimal.NewFromInt(int64(i % 5)).Mul(pct("0.02")))
		purchFactor := pct("0.85").Add(decimal.NewFromInt(int64(i % 4)).Mul(pct("0.02")))
		out = append(out, SeriesPoint{
			Month:    d.Format("Jan"),
			Sales:    maxZero(round2(c.SalesBalance.Mul(salesFactor))),
			Purchase: maxZero(round2(c.PurchaseBalance.Mul(purchFactor))),
		})
	}
	return out
}

const clearDateCount = 6

// ClearDates lists the dates a company can be cleared back to: its last load
// day and the five weeks before it, newest first. An unparseable load date
// counts from now.
func ClearDates(lastLoad string, now time.Time) []string {
	base, err := calendar.Parse(lastLoad)
	if err != nil {
		base = now.UTC()
	}
	base = calendar.StartOfDay(base)

	out := make([]string, 0, clearDateCount)
	for i := 0; i < clearDateCount; i++ {
		out = append(out, base.AddDate(0, 0, -7*i).Format(calendar.DateFormat))
	}
	return out
}
