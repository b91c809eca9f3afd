package dashboard

import (
	"strconv"
	"time"

	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/export"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/synth"
)

func medium(iso string) string {
	return format.DateOr(iso, format.DateMedium, format.Placeholder)
}

// CompanyColumns are the CSV columns of a companies export.
var CompanyColumns = []export.Column[model.Company]{
	{Label: "Name", Value: func(c model.Company) string { return c.Name }},
	{Label: "Email", Value: func(c model.Company) string { return c.Email }},
	{Label: "Reference", Value: func(c model.Company) string { return c.Reference }},
	{Label: "Last Load Date", Value: func(c model.Company) string { return medium(c.LastLoadDate) }},
	{Label: "Sales Balance", Value: func(c model.Company) string { return c.SalesBalance.StringFixed(2) }},
	{Label: "Purchase Balance", Value: func(c model.Company) string { return c.PurchaseBalance.StringFixed(2) }},
	{Label: "Status", Value: func(c model.Company) string { return string(c.Status) }},
}

// ExchangeRateColumns are the CSV columns of an exchange rates export.
var ExchangeRateColumns = []export.Column[model.ExchangeRate]{
	{Label: "From Currency", Value: func(r model.ExchangeRate) string { return r.From }},
	{Label: "To Currency", Value: func(r model.ExchangeRate) string { return r.To }},
	{Label: "Rate", Value: func(r model.ExchangeRate) string { return r.Rate.String() }},
	{Label: "Last Updated", Value: func(r model.ExchangeRate) string { return r.LastUpdated }},
	{Label: "Source", Value: func(r model.ExchangeRate) string { return string(r.Source) }},
}

// ConfigOptionColumns are the CSV columns of a configuration options export.
var ConfigOptionColumns = []export.Column[model.ConfigOption]{
	{Label: "Name", Value: func(o model.ConfigOption) string { return o.Name }},
	{Label: "Value", Value: func(o model.ConfigOption) string { return o.Value }},
	{Label: "Description", Value: func(o model.ConfigOption) string { return o.Description }},
	{Label: "Last Updated", Value: func(o model.ConfigOption) string { return o.LastUpdated }},
}

// CloudConnectionColumns are the CSV columns of a cloud connections export.
// Wait time is measured from now.
func CloudConnectionColumns(now time.Time) []export.Column[model.CloudConnection] {
	return []export.Column[model.CloudConnection]{
		{Label: "Company", Value: func(c model.CloudConnection) string { return c.CompanyName }},
		{Label: "Connector", Value: func(c model.CloudConnection) string { return c.Connector }},
		{Label: "Start Date", Value: func(c model.CloudConnection) string { return c.StartDate }},
		{Label: "Status", Value: func(c model.CloudConnection) string { return string(c.Status) }},
		{Label: "Wait Time (min)", Value: func(c model.CloudConnection) string {
			return strconv.Itoa(calendar.MinutesSince(now, c.StartDate))
		}},
	}
}

// ExtractFileColumns are the CSV columns of an extract files export.
var ExtractFileColumns = []export.Column[model.ExtractFile]{
	{Label: "Company", Value: func(f model.ExtractFile) string { return f.CompanyName }},
	{Label: "Connector", Value: func(f model.ExtractFile) string { return f.Connector }},
	{Label: "Received Date", Value: func(f model.ExtractFile) string { return f.ReceivedDate }},
	{Label: "Status", Value: func(f model.ExtractFile) string { return string(f.Status) }},
	{Label: "Error", Value: func(f model.ExtractFile) string { return f.ErrorMessage }},
	{Label: "Size", Value: func(f model.ExtractFile) string { return f.Size }},
}

// SnapshotColumns are the CSV columns of a snapshots export.
var SnapshotColumns = []export.Column[synth.Snapshot]{
	{Label: "Load Date", Value: func(s synth.Snapshot) string { return s.LoadDate }},
	{Label: "Sales Balance", Value: func(s synth.Snapshot) string { return s.SalesBalance.StringFixed(2) }},
	{Label: "Previous Balance", Value: func(s synth.Snapshot) string { return s.PreviousBalance.StringFixed(2) }},
	{Label: "New Items", Value: func(s synth.Snapshot) string { return strconv.FormatInt(s.NewItemCount, 10) }},
	{Label: "New Invoices", Value: func(s synth.Snapshot) string { return strconv.FormatInt(s.NewInvoiceTotal, 10) }},
	{Label: "New Credits", Value: func(s synth.Snapshot) string { return strconv.FormatInt(s.NewCreditTotal, 10) }},
	{Label: "New Payments", Value: func(s synth.Snapshot) string { return strconv.FormatInt(s.NewPaymentTotal, 10) }},
}
