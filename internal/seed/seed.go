// Package seed holds the demo data set the admin dashboard starts from.
// Every function returns a fresh slice so callers may modify their copy.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/model"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func gbp(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Companies returns the demo company book.
func Companies() []model.Company {
	return []model.Company{
		{ID: "1", Name: "Acme Widgets", Email: "accounts@acmewidgets.co.uk", Reference: "ACME001", LastLoadDate: "2025-08-15T10:30:00Z", SalesBalance: gbp("245000.50"), PurchaseBalance: gbp("120500.00"), Status: model.CompanyCloud},
		{ID: "2", Name: "Goode Wood Furniture", Email: "finance@goodewood.com", Reference: "GOOD002", LastLoadDate: "2025-07-28T09:00:00Z", SalesBalance: gbp("189320.75"), PurchaseBalance: gbp("95210.40"), Status: model.CompanyCloud},
		{ID: "3", Name: "Lunar Logistics", Email: "ledger@lunarlogistics.io", Reference: "LUNA003", LastLoadDate: "2025-08-18T14:45:00Z", SalesBalance: gbp("312450.00"), PurchaseBalance: gbp("201330.10"), Status: model.CompanyManual},
		{ID: "4", Name: "Birch & Co", Email: "hello@birchandco.co.uk", Reference: "BIRC004", LastLoadDate: "2025-08-02T11:20:00Z", SalesBalance: gbp("0"), PurchaseBalance: gbp("0"), Status: model.CompanyCloud},
		{ID: "5", Name: "Aurora Media", Email: "finance@aurora.com", Reference: "AURO005", LastLoadDate: "2025-07-30T16:05:00Z", SalesBalance: gbp("98765.43"), PurchaseBalance: gbp("45678.90"), Status: model.CompanyCloud},
		{ID: "6", Name: "Falcon Tools", Email: "ap@falcontools.com", Reference: "FALC006", LastLoadDate: "2025-08-19T13:40:00Z", SalesBalance: gbp("156000.00"), PurchaseBalance: gbp("78000.00"), Status: model.CompanyCloud},
		{ID: "7", Name: "Maple Hardware", Email: "accounts@maplehardware.ca", Reference: "MAPL007", LastLoadDate: "2025-06-30T08:55:00Z", SalesBalance: gbp("-1250.00"), PurchaseBalance: gbp("3400.00"), Status: model.CompanyManual},
		{ID: "8", Name: "Green Leaf Foods", Email: "finance@greenleaf.co.uk", Reference: "GREE008", LastLoadDate: "2025-08-08T15:30:00Z", SalesBalance: gbp("423100.25"), PurchaseBalance: gbp("310050.60"), Status: model.CompanyCloud},
		{ID: "9", Name: "Nimbus Cloudware", Email: "billing@nimbus.dev", Reference: "NIMB009", LastLoadDate: "", SalesBalance: gbp("0"), PurchaseBalance: gbp("0"), Status: model.CompanyPending},
		{ID: "10", Name: "Kensington Books", Email: "office@kensingtonbooks.co.uk", Reference: "KENS010", LastLoadDate: "2025-08-17T10:00:00Z", SalesBalance: gbp("67890.12"), PurchaseBalance: gbp("23456.78"), Status: model.CompanyCloud},
		{ID: "11", Name: "Seaside Bakery", Email: "hello@seasidebakery.co.uk", Reference: "SEAS011", LastLoadDate: "2025-07-15T07:45:00Z", SalesBalance: gbp("12500.00"), PurchaseBalance: gbp("0"), Status: model.CompanyCloud},
		{ID: "12", Name: "Jimbo's Cars", Email: "jim@jimboscars.com", Reference: "JIMB012", LastLoadDate: "not recorded", SalesBalance: gbp("54321.00"), PurchaseBalance: gbp("12000.00"), Status: model.CompanyManual},
	}
}

// ExchangeRates returns the maintained currency rates.
func ExchangeRates() []model.ExchangeRate {
	return []model.ExchangeRate{
		{ID: "1", From: "GBP", To: "USD", Rate: gbp("1.27"), LastUpdated: "2025-08-15T10:30:00Z", Source: model.SourceManual},
		{ID: "2", From: "GBP", To: "EUR", Rate: gbp("1.17"), LastUpdated: "2025-08-15T10:30:00Z", Source: model.SourceManual},
		{ID: "3", From: "USD", To: "GBP", Rate: gbp("0.79"), LastUpdated: "2025-08-14T09:15:00Z", Source: model.SourceLendscape},
		{ID: "4", From: "USD", To: "EUR", Rate: gbp("0.92"), LastUpdated: "2025-08-14T09:15:00Z", Source: model.SourceLendscape},
		{ID: "5", From: "EUR", To: "GBP", Rate: gbp("0.86"), LastUpdated: "2025-08-13T14:45:00Z", Source: model.SourceOpenExchangeRates},
		{ID: "6", From: "EUR", To: "USD", Rate: gbp("1.09"), LastUpdated: "2025-08-13T14:45:00Z", Source: model.SourceOpenExchangeRates},
		{ID: "7", From: "GBP", To: "CAD", Rate: gbp("1.72"), LastUpdated: "2025-08-12T11:20:00Z", Source: model.SourceManual},
		{ID: "8", From: "GBP", To: "AUD", Rate: gbp("1.92"), LastUpdated: "2025-08-11T16:05:00Z", Source: model.SourceLendscape},
		{ID: "9", From: "USD", To: "JPY", Rate: gbp("149.82"), LastUpdated: "2025-08-10T13:40:00Z", Source: model.SourceOpenExchangeRates},
		{ID: "10", From: "EUR", To: "CHF", Rate: gbp("0.96"), LastUpdated: "2025-08-09T08:55:00Z", Source: model.SourceManual},
	}
}

// ConfigOptions returns the platform settings.
func ConfigOptions() []model.ConfigOption {
	return []model.ConfigOption{
		{ID: "1", Name: "default-currency", Value: "GBP", Description: "Default currency used throughout the application", LastUpdated: "2025-08-15T10:30:00Z"},
		{ID: "2", Name: "service-company-name", Value: "45 Finance", Description: "Name of the service company", LastUpdated: "2025-08-14T09:15:00Z"},
		{ID: "3", Name: "oa-external-url", Value: "https://demo.oa.lendscape.cloud/external", Description: "External URL for Open Accounting", LastUpdated: "2025-08-13T14:45:00Z"},
		{ID: "4", Name: "default-funding-type", Value: "Company", Description: "Default funding type for new companies", LastUpdated: "2025-08-12T11:20:00Z"},
		{ID: "5", Name: "enable-notifications", Value: "true", Description: "Enable email notifications", LastUpdated: "2025-08-11T16:05:00Z"},
		{ID: "6", Name: "notification-email", Value: "admin@example.com", Description: "Email address for system notifications", LastUpdated: "2025-08-10T13:40:00Z"},
		{ID: "7", Name: "data-retention-days", Value: "90", Description: "Number of days to retain data", LastUpdated: "2025-08-09T08:55:00Z"},
		{ID: "8", Name: "api-timeout-seconds", Value: "30", Description: "Timeout for API requests in seconds", LastUpdated: "2025-08-08T15:30:00Z"},
		{ID: "9", Name: "max-file-size-mb", Value: "10", Description: "Maximum file size for uploads in MB", LastUpdated: "2025-08-07T12:15:00Z"},
		{ID: "10", Name: "default-page-size", Value: "20", Description: "Default number of items per page", LastUpdated: "2025-08-06T10:00:00Z"},
	}
}

var connections = []struct {
	company    string
	connector  string
	minutesAgo int
	extracting bool
}{
	{"Acme Widgets", "CODAT", 5, false},
	{"Goode Wood Furniture", "XERO", 12, true},
	{"Lunar Logistics", "VALIDIS", 18, false},
	{"Birch & Co", "QB", 25, true},
	{"Aurora Media", "XERO", 30, false},
	{"Falcon Tools", "VALIDIS", 35, true},
	{"Maple Hardware", "CODAT", 40, false},
	{"Green Leaf Foods", "QB", 45, true},
	{"Nimbus Cloudware", "VALIDIS", 50, false},
	{"Kensington Books", "CODAT", 52, false},
	{"Stellar Systems", "XERO", 55, false},
	{"Quantum Innovations", "QB", 58, false},
}

// CloudConnections returns the extraction queue, started within the hour
// before now.
func CloudConnections(now time.Time) []model.CloudConnection {
	out := make([]model.CloudConnection, 0, len(connections))
	for i, c := range connections {
		status := model.ConnectionQueued
		if c.extracting {
			status = model.ConnectionExtracting
		}
		out = append(out, model.CloudConnection{
			ID:          fmt.Sprint(i + 1),
			CompanyName: c.company,
			Connector:   c.connector,
			StartDate:   now.Add(-time.Duration(c.minutesAgo) * time.Minute).UTC().Format(isoMillis),
			Status:      status,
		})
	}
	return out
}

// ExtractFiles returns received ledger extracts.
func ExtractFiles() []model.ExtractFile {
	return []model.ExtractFile{
		{ID: "1", CompanyName: "Acme Widgets", Connector: "codat", ReceivedDate: "2025-08-15T10:30:00Z", Status: model.ExtractQueued, Size: "SMALL"},
		{ID: "2", CompanyName: "Goode Wood Furniture", Connector: "native", ReceivedDate: "2025-08-14T09:15:00Z", Status: model.ExtractLoading, Size: "MEDIUM"},
		{ID: "3", CompanyName: "Lunar Logistics", Connector: "validis", ReceivedDate: "2025-08-13T14:45:00Z", Status: model.ExtractLoaded, Size: "LARGE"},
		{ID: "4", CompanyName: "Birch & Co", Connector: "codat", ReceivedDate: "2025-08-12T11:20:00Z", Status: model.ExtractFailed, ErrorMessage: "Missing currency", Size: "X-LARGE"},
		{ID: "5", CompanyName: "Aurora Media", Connector: "native", ReceivedDate: "2025-08-11T16:05:00Z", Status: model.ExtractQueued, Size: "SMALL"},
		{ID: "6", CompanyName: "Falcon Tools", Connector: "validis", ReceivedDate: "2025-08-10T13:40:00Z", Status: model.ExtractLoading, Size: "MEDIUM"},
		{ID: "7", CompanyName: "Maple Hardware", Connector: "codat", ReceivedDate: "2025-08-09T08:55:00Z", Status: model.ExtractLoaded, Size: "LARGE"},
		{ID: "8", CompanyName: "Green Leaf Foods", Connector: "native", ReceivedDate: "2025-08-08T15:30:00Z", Status: model.ExtractFailed, ErrorMessage: "Invalid data format", Size: "X-LARGE"},
		{ID: "9", CompanyName: "Nimbus Cloudware", Connector: "validis", ReceivedDate: "2025-08-07T12:15:00Z", Status: model.ExtractQueued, Size: "SMALL"},
		{ID: "10", CompanyName: "Kensington Books", Connector: "codat", ReceivedDate: "2025-08-06T10:00:00Z", Status: model.ExtractLoading, Size: "LARGE"},
	}
}

// Metrics returns the headline KPI figures.
func Metrics() []model.KPICard {
	return []model.KPICard{
		{ID: "m1", Label: "Total Companies", Value: "20", ChangePct: 5.2, Trend: model.TrendUp, HelperText: "vs last 30 days"},
		{ID: "m2", Label: "Net Sales Balance", Value: "£2.68m", ChangePct: 1.1, Trend: model.TrendUp, HelperText: "MTD"},
		{ID: "m3", Label: "Net Purchase Balance", Value: "£1.47m", ChangePct: -0.6, Trend: model.TrendDown, HelperText: "MTD"},
		{ID: "m4", Label: "Cloud Connections", Value: "12", ChangePct: 2.0, Trend: model.TrendUp, HelperText: "of 20 total"},
	}
}

// ActorSystem marks activity raised by the platform rather than an admin.
const ActorSystem = "system"

// Activities returns the recent company activity feed.
func Activities() []activity.Entry {
	at := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []activity.Entry{
		{Timestamp: at("2025-08-25T15:45:00Z"), Actor: ActorSystem, Action: "Loaded new transactions", Details: "143 records", Subject: "Seaside Bakery"},
		{Timestamp: at("2025-08-25T14:20:00Z"), Actor: ActorSystem, Action: "Synced to cloud", Subject: "Oxford Analytics"},
		{Timestamp: at("2025-08-25T12:02:00Z"), Actor: ActorSystem, Action: "User invited", Details: "Finance@aurora.com", Subject: "Aurora Media"},
		{Timestamp: at("2025-08-24T17:30:00Z"), Actor: ActorSystem, Action: "Clear action executed", Subject: "Green Leaf Foods"},
		{Timestamp: at("2025-08-24T09:12:00Z"), Actor: ActorSystem, Action: "Edited company details", Subject: "Jimbo's Cars"},
	}
}

// Admin is a dashboard operator.
type Admin struct {
	Username string
	Password string
}

// Admins returns the hardcoded operator allow-list.
func Admins() []Admin {
	return []Admin{
		{Username: "Admin User 1", Password: "admin1"},
		{Username: "Admin User 2", Password: "admin2"},
		{Username: "Admin User 3", Password: "admin3"},
	}
}

// RegistrationBaseURL is where onboarding links point.
const RegistrationBaseURL = "https://onboarding.openaccounting.example/register/"

// Registrations returns count onboarding links for a company, thirty days
// apart and newest first. Every other link after the first is closed sixty
// days after it was issued.
func Registrations(companyID string, now time.Time, count int) []model.Registration {
	out := make([]model.Registration, 0, count)
	for i := 0; i < count; i++ {
		created := now.UTC().AddDate(0, 0, -(i*30 + 10))
		r := model.Registration{
			ID:          fmt.Sprintf("reg-%s-%d", companyID, i+1),
			CompanyID:   companyID,
			DateCreated: created.Format(isoMillis),
			DateExpires: created.AddDate(1, 0, 0).Format(isoMillis),
			Link:        fmt.Sprintf("%s%s?ref=%d", RegistrationBaseURL, companyID, i+1),
		}
		if i > 0 && i%2 == 0 {
			r.DateClosed = created.AddDate(0, 0, 60).Format(isoMillis)
		}
		out = append(out, r)
	}
	return out
}
