package model

import (
	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/table"
)

// TransactionType classifies a sales ledger item.
type TransactionType string

const (
	TypeInvoice          TransactionType = "Invoice"
	TypeDebitAdjustment  TransactionType = "Debit Adjustment"
	TypePayment          TransactionType = "Payment"
	TypeCreditNote       TransactionType = "Credit Note"
	TypeCreditAdjustment TransactionType = "Credit Adjustment"
)

// Transaction is one sales ledger item. Negative amounts are credits.
type Transaction struct {
	ID           string
	CustomerName string
	CustomerRef  string
	Amount       decimal.Decimal
	Remaining    decimal.Decimal
	Document     string
	DueDate      string
	Open         bool
	Type         TransactionType
	Notified     bool
	DocumentDate string
	EntryDate    string
}

// TransactionListing sorts and searches ledger items.
var TransactionListing = table.Listing[Transaction]{
	Schema: table.Schema[Transaction]{
		"customerName": table.String(func(t Transaction) string { return t.CustomerName }),
		"customerRef":  table.String(func(t Transaction) string { return t.CustomerRef }),
		"document":     table.String(func(t Transaction) string { return t.Document }),
		"type":         table.String(func(t Transaction) string { return string(t.Type) }),
		"amount":       table.Number(func(t Transaction) float64 { return t.Amount.InexactFloat64() }),
		"remaining":    table.Number(func(t Transaction) float64 { return t.Remaining.InexactFloat64() }),
		"dueDate":      table.Date(func(t Transaction) string { return t.DueDate }),
		"documentDate": table.Date(func(t Transaction) string { return t.DocumentDate }),
		"entryDate":    table.Date(func(t Transaction) string { return t.EntryDate }),
	},
	SearchFields: []string{"customerName", "customerRef", "document"},
	DefaultSort:  table.SortState{Key: "documentDate", Direction: table.Descending},
}

// Customer is a debtor on a company's sales ledger.
type Customer struct {
	ID          string
	Name        string
	Reference   string
	Outstanding decimal.Decimal
	Address     string
	Notified    bool
}

// CustomerListing sorts and searches customers.
var CustomerListing = table.Listing[Customer]{
	Schema: table.Schema[Customer]{
		"name":        table.String(func(c Customer) string { return c.Name }),
		"reference":   table.String(func(c Customer) string { return c.Reference }),
		"outstanding": table.Number(func(c Customer) float64 { return c.Outstanding.InexactFloat64() }),
	},
	SearchFields: []string{"name", "reference"},
	DefaultSort:  table.SortState{Key: "outstanding", Direction: table.Descending},
}
