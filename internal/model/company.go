package model

import (
	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/table"
)

// CompanyStatus is how a company's ledgers reach the platform.
type CompanyStatus string

const (
	CompanyCloud   CompanyStatus = "cloud"
	CompanyManual  CompanyStatus = "manual"
	CompanyPending CompanyStatus = "pending"
)

// Company is one row of the companies table.
type Company struct {
	ID              string
	Name            string
	Email           string
	Reference       string
	LastLoadDate    string // ISO-8601
	SalesBalance    decimal.Decimal
	PurchaseBalance decimal.Decimal
	Status          CompanyStatus
}

// HasBalance reports whether either ledger carries a non-zero balance.
func (c Company) HasBalance() bool {
	return !c.SalesBalance.IsZero() || !c.PurchaseBalance.IsZero()
}

// CompanyListing sorts and searches companies.
var CompanyListing = table.Listing[Company]{
	Schema: table.Schema[Company]{
		"name":            table.String(func(c Company) string { return c.Name }),
		"email":           table.String(func(c Company) string { return c.Email }),
		"reference":       table.String(func(c Company) string { return c.Reference }),
		"lastLoadDate":    table.Date(func(c Company) string { return c.LastLoadDate }),
		"salesBalance":    table.Number(func(c Company) float64 { return c.SalesBalance.InexactFloat64() }),
		"purchaseBalance": table.Number(func(c Company) float64 { return c.PurchaseBalance.InexactFloat64() }),
		"status":          table.String(func(c Company) string { return string(c.Status) }),
	},
	SearchFields: []string{"name", "reference"},
	DefaultSort:  table.SortState{Key: "name", Direction: table.Ascending},
}
