package synth

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/model"
)

const (
	maxOpenInvoiceCount = 999
	invoiceAverage      = 1200
)

// Summary holds the figures shown when hovering over a company row.
type Summary struct {
	TotalCustomers      int64
	TotalSuppliers      int64
	ActiveCustomers     int64
	PrevSalesBalance    decimal.Decimal
	PrevPurchaseBalance decimal.Decimal
	PrevLoadDate        string
	OpenInvoiceCount    int64
	OpenInvoiceAmount   decimal.Decimal
	CreditNoteAmount    decimal.Decimal
	CreditNoteCount     int64
	UnallocatedCash     decimal.Decimal
	LastInvoiceDate     string
	LastPaymentDate     string
}

// Summarize derives a company's hover summary from its balances, id and last
// load date. now is only used when the load date does not parse.
func Summarize(c model.Company, now time.Time) Summary {
	seed := ParseSeed(c.ID)
	customers := 8 + seed%6
	suppliers := 5 + seed%5
	active := customers - seed%3
	if active < 0 {
		active = 0
	}

	sales := c.SalesBalance
	openAmount := maxZero(round2(sales.Mul(pct("0.85"))))
	openCount := roundHalfUp(openAmount.Div(decimal.NewFromInt(invoiceAverage))).IntPart()
	openCount = min(max(openCount, 1), maxOpenInvoiceCount)

	creditCount := roundHalfUp(decimal.NewFromInt(customers).Mul(pct("0.1"))).IntPart()

	return Summary{
		TotalCustomers:      customers,
		TotalSuppliers:      suppliers,
		ActiveCustomers:     active,
		PrevSalesBalance:    maxZero(round2(sales.Mul(pct("0.95")))),
		PrevPurchaseBalance: maxZero(round2(c.PurchaseBalance.Mul(pct("0.95")))),
		PrevLoadDate:        calendar.AddDays(c.LastLoadDate, -7, now),
		OpenInvoiceCount:    openCount,
		OpenInvoiceAmount:   openAmount,
		CreditNoteAmount:    round2(sales.Mul(pct("0.02"))).Neg(),
		CreditNoteCount:     max(creditCount, 1),
		UnallocatedCash:     round2(sales.Mul(pct("0.1"))),
		LastInvoiceDate:     calendar.AddDays(c.LastLoadDate, -int(seed%15+1), now),
		LastPaymentDate:     calendar.AddDays(c.LastLoadDate, -int(seed%20+2), now),
	}
}

// Lines renders the summary as tooltip text, one figure per line.
func (s Summary) Lines() []string {
	date := func(iso string) string { return format.DateOr(iso, format.DateShort, format.Placeholder) }
	return []string{
		fmt.Sprintf("Total Customers: %d", s.TotalCustomers),
		fmt.Sprintf("Total Suppliers: %d", s.TotalSuppliers),
		fmt.Sprintf("Total Active Customers: %d", s.ActiveCustomers),
		fmt.Sprintf("Previous Sales Ledger Balance: %s", format.GBP(s.PrevSalesBalance)),
		fmt.Sprintf("Previous Purchase Ledger Balance: %s", format.GBP(s.PrevPurchaseBalance)),
		fmt.Sprintf("Previous Load date: %s", date(s.PrevLoadDate)),
		fmt.Sprintf("Total open invoices count: %d", s.OpenInvoiceCount),
		fmt.Sprintf("Total open invoices amount: %s", format.GBP(s.OpenInvoiceAmount)),
		fmt.Sprintf("Total credit note amount: %s", format.GBP(s.CreditNoteAmount)),
		fmt.Sprintf("Total credit note count: %d", s.CreditNoteCount),
		fmt.Sprintf("Total unallocated cash: %s", format.GBP(s.UnallocatedCash)),
		fmt.Sprintf("Last new invoice date: %s", date(s.LastInvoiceDate)),
		fmt.Sprintf("Last payment date: %s", date(s.LastPaymentDate)),
	}
}

// Balances is the sales ledger balance broken into its components.
type Balances struct {
	SalesLedger         decimal.Decimal
	NotifiedSalesLedger decimal.Decimal
	Invoices            decimal.Decimal
	CreditNotes         decimal.Decimal
	OpenCash            decimal.Decimal
}

// BalancesFor breaks down a sales ledger balance.
func BalancesFor(sales decimal.Decimal) Balances {
	return Balances{
		SalesLedger:         round2(sales),
		NotifiedSalesLedger: round2(sales.Mul(pct("0.8"))),
		Invoices:            round2(maxZero(sales.Mul(pct("0.85")))),
		CreditNotes:         round2(sales.Mul(pct("0.02"))).Neg(),
		OpenCash:            round2(sales.Mul(pct("0.1"))),
	}
}
