package model

import (
	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/table"
)

// RateSource identifies where an exchange rate came from.
type RateSource string

const (
	SourceManual            RateSource = "manual"
	SourceLendscape         RateSource = "lendscape"
	SourceOpenExchangeRates RateSource = "openexchangerates"
)

// Label is the display name of the source.
func (s RateSource) Label() string {
	switch s {
	case SourceLendscape:
		return "Lendscape RF"
	case SourceOpenExchangeRates:
		return "openexchangerates.org"
	case SourceManual:
		return "Manual"
	}
	return string(s)
}

// ExchangeRate converts one unit of From into To.
type ExchangeRate struct {
	ID          string
	From        string
	To          string
	Rate        decimal.Decimal
	LastUpdated string
	Source      RateSource
}

// Pair returns the "FROM/TO" label of the rate.
func (r ExchangeRate) Pair() string {
	return r.From + "/" + r.To
}

// ExchangeRateListing sorts and searches exchange rates.
var ExchangeRateListing = table.Listing[ExchangeRate]{
	Schema: table.Schema[ExchangeRate]{
		"fromCurrency": table.String(func(r ExchangeRate) string { return r.From }),
		"toCurrency":   table.String(func(r ExchangeRate) string { return r.To }),
		"rate":         table.Number(func(r ExchangeRate) float64 { return r.Rate.InexactFloat64() }),
		"lastUpdated":  table.Date(func(r ExchangeRate) string { return r.LastUpdated }),
		"source":       table.String(func(r ExchangeRate) string { return string(r.Source) }),
	},
	SearchFields: []string{"fromCurrency", "toCurrency", "source"},
	DefaultSort:  table.SortState{Key: "lastUpdated", Direction: table.Descending},
}

// ConfigOption is a named platform setting.
type ConfigOption struct {
	ID          string
	Name        string
	Value       string
	Description string
	LastUpdated string
}

// ConfigOptionListing sorts and searches configuration options.
var ConfigOptionListing = table.Listing[ConfigOption]{
	Schema: table.Schema[ConfigOption]{
		"name":        table.String(func(o ConfigOption) string { return o.Name }),
		"value":       table.String(func(o ConfigOption) string { return o.Value }),
		"description": table.String(func(o ConfigOption) string { return o.Description }),
		"lastUpdated": table.Date(func(o ConfigOption) string { return o.LastUpdated }),
	},
	SearchFields: []string{"name", "value", "description"},
	DefaultSort:  table.SortState{Key: "lastUpdated", Direction: table.Descending},
}

// ConnectionStatus is the state of a cloud extraction.
type ConnectionStatus string

const (
	ConnectionQueued     ConnectionStatus = "QUEUED"
	ConnectionExtracting ConnectionStatus = "EXTRACTING"
)

// CloudConnection is an in-flight extraction from an accounting package.
type CloudConnection struct {
	ID          string
	CompanyName string
	Connector   string // XERO, QB, CODAT, VALIDIS
	StartDate   string
	Status      ConnectionStatus
}

// CloudConnectionListing sorts and searches cloud connections.
var CloudConnectionListing = table.Listing[CloudConnection]{
	Schema: table.Schema[CloudConnection]{
		"companyName": table.String(func(c CloudConnection) string { return c.CompanyName }),
		"connector":   table.String(func(c CloudConnection) string { return c.Connector }),
		"startDate":   table.Date(func(c CloudConnection) string { return c.StartDate }),
		"status":      table.String(func(c CloudConnection) string { return string(c.Status) }),
	},
	SearchFields: []string{"companyName", "connector", "status"},
	DefaultSort:  table.SortState{Key: "startDate", Direction: table.Descending},
}

// ExtractStatus is the state of a received extract file.
type ExtractStatus string

const (
	ExtractQueued  ExtractStatus = "queued"
	ExtractLoading ExtractStatus = "loading"
	ExtractLoaded  ExtractStatus = "loaded"
	ExtractFailed  ExtractStatus = "failed"
)

// ExtractFile is a ledger extract waiting to be, or already, loaded.
type ExtractFile struct {
	ID           string
	CompanyName  string
	Connector    string // native, codat, validis
	ReceivedDate string
	Status       ExtractStatus
	ErrorMessage string // empty unless Status is failed
	Size         string // SMALL, MEDIUM, LARGE, X-LARGE
}

// ExtractFileListing sorts and searches extract files.
var ExtractFileListing = table.Listing[ExtractFile]{
	Schema: table.Schema[ExtractFile]{
		"companyName":  table.String(func(f ExtractFile) string { return f.CompanyName }),
		"connector":    table.String(func(f ExtractFile) string { return f.Connector }),
		"receivedDate": table.Date(func(f ExtractFile) string { return f.ReceivedDate }),
		"status":       table.String(func(f ExtractFile) string { return string(f.Status) }),
		"size":         table.String(func(f ExtractFile) string { return f.Size }),
		"errorMessage": table.OptionalString(func(f ExtractFile) (string, bool) {
			return f.ErrorMessage, f.ErrorMessage != ""
		}),
	},
	SearchFields: []string{"companyName", "connector", "status", "errorMessage"},
	DefaultSort:  table.SortState{Key: "receivedDate", Direction: table.Descending},
}

// Registration is a self-service onboarding link issued to a company.
type Registration struct {
	ID          string
	CompanyID   string
	DateCreated string
	DateClosed  string // empty while open
	DateExpires string
	Link        string
}

// Open reports whether the registration has not been closed.
func (r Registration) Open() bool {
	return r.DateClosed == ""
}

// RegistrationListing sorts registrations.
var RegistrationListing = table.Listing[Registration]{
	Schema: table.Schema[Registration]{
		"dateCreated": table.Date(func(r Registration) string { return r.DateCreated }),
		"dateExpires": table.Date(func(r Registration) string { return r.DateExpires }),
		"dateClosed": table.OptionalDate(func(r Registration) (string, bool) {
			return r.DateClosed, r.DateClosed != ""
		}),
		"link": table.String(func(r Registration) string { return r.Link }),
	},
	SearchFields: []string{"link"},
	DefaultSort:  table.SortState{Key: "dateCreated", Direction: table.Descending},
}
