package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/id"
	"github.com/openaccounting/oadmin/internal/log"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/seed"
	"github.com/openaccounting/oadmin/internal/simulate"
	"github.com/openaccounting/oadmin/internal/synth"
	"github.com/openaccounting/oadmin/internal/table"
)

const (
	registrationCount   = 3
	ledgerItemCount     = 12
	ledgerCustomerCount = 8
	snapshotWindowDays  = 90
)

// Company returns one company by ID.
func (s *Service) Company(companyID string) (model.Company, error) {
	for _, c := range s.companies {
		if c.ID == companyID {
			return c, nil
		}
	}
	return model.Company{}, fmt.Errorf("company %q: %w", companyID, ErrNotFound)
}

// Detail is everything shown in a company's side panel.
type Detail struct {
	Company       model.Company
	Summary       synth.Summary
	Balances      synth.Balances
	Ageing        synth.Ageing
	Retentions    synth.Retentions
	Connector     synth.Connector
	LoadStatus    synth.LoadStatus
	Series        []synth.SeriesPoint
	Registrations []model.Registration
}

// CompanyDetail derives the side-panel figures for a company.
func (s *Service) CompanyDetail(companyID string) (Detail, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return Detail{}, err
	}
	now := s.now()
	whole := synth.WholeAmount(c.SalesBalance)
	return Detail{
		Company:       c,
		Summary:       synth.Summarize(c, now),
		Balances:      synth.BalancesFor(c.SalesBalance),
		Ageing:        synth.AgeingFor(whole),
		Retentions:    synth.RetentionsFor(whole),
		Connector:     synth.ConnectorFor(c),
		LoadStatus:    s.loadStatus(c),
		Series:        synth.MonthlySeries(c, now),
		Registrations: append(append([]model.Registration(nil), s.issued[c.ID]...), seed.Registrations(c.ID, now, registrationCount)...),
	}, nil
}

func (s *Service) loadStatus(c model.Company) synth.LoadStatus {
	return synth.LoadStatusFor(c, s.requested[c.ID])
}

// LoadStatus reports the load status of a company.
func (s *Service) LoadStatus(companyID string) (synth.LoadStatus, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return "", err
	}
	return s.loadStatus(c), nil
}

// Ledger is a company's randomly generated sales ledger.
type Ledger struct {
	Transactions []model.Transaction
	Customers    []model.Customer
}

// Ledger generates ledger items and customers for a company from src.
func (s *Service) Ledger(src simulate.Source, companyID string) (Ledger, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return Ledger{}, err
	}
	return Ledger{
		Transactions: simulate.Transactions(src, c.ID, ledgerItemCount, s.now()),
		Customers:    simulate.Customers(src, c.ID, ledgerCustomerCount),
	}, nil
}

// LedgerRecord is one ledger item or customer found by record ID. Exactly one
// of the two is set.
type LedgerRecord struct {
	Transaction *model.Transaction
	Customer    *model.Customer
}

// LedgerRecord looks up a single record such as "3-tx-4" in the ledger src
// generates for its company.
func (s *Service) LedgerRecord(src simulate.Source, recordID string) (LedgerRecord, error) {
	companyID, kind, _, err := id.ParseRecordID(recordID)
	if err != nil {
		return LedgerRecord{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	ledger, err := s.Ledger(src, companyID)
	if err != nil {
		return LedgerRecord{}, err
	}

	switch kind {
	case id.KindTransaction:
		for i := range ledger.Transactions {
			if ledger.Transactions[i].ID == recordID {
				return LedgerRecord{Transaction: &ledger.Transactions[i]}, nil
			}
		}
	case id.KindCustomer:
		for i := range ledger.Customers {
			if ledger.Customers[i].ID == recordID {
				return LedgerRecord{Customer: &ledger.Customers[i]}, nil
			}
		}
	}
	return LedgerRecord{}, fmt.Errorf("%w: ledger record %s", ErrNotFound, recordID)
}

// Snapshots lists a company's weekly snapshots within window, sorted by
// state (load date descending when state is empty).
func (s *Service) Snapshots(companyID string, window calendar.Window, state table.SortState) ([]synth.Snapshot, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return nil, err
	}
	page, err := synth.SnapshotListing.Run(synth.Snapshots(c), table.Query{
		DateField: "loadDate",
		Window:    window,
		Sort:      state,
	})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

// DefaultSnapshotWindow covers the ninety days up to the latest snapshot, or
// is open when there are no snapshots.
func DefaultSnapshotWindow(snaps []synth.Snapshot) calendar.Window {
	var latest time.Time
	for _, sn := range snaps {
		if t, err := calendar.Parse(sn.LoadDate); err == nil && t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return calendar.Window{}
	}
	from := calendar.StartOfDay(latest.AddDate(0, 0, -snapshotWindowDays))
	to := calendar.EndOfDay(latest)
	return calendar.Window{From: &from, To: &to}
}

// ClearDates lists the snapshot dates a company can be cleared back to.
func (s *Service) ClearDates(companyID string) ([]string, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return nil, err
	}
	return synth.ClearDates(c.LastLoadDate, s.now()), nil
}

// ClearParams selects what to clear.
type ClearParams struct {
	CompanyID string
	// SnapshotDate becomes the new last load date; empty keeps the current one.
	SnapshotDate string
	// ConfirmReference must equal the company's reference.
	ConfirmReference string
}

func confirm(c model.Company, ref string) error {
	if ref != c.Reference {
		return fmt.Errorf("company %q: %w", c.ID, ErrConfirmation)
	}
	return nil
}

// ClearCompany zeroes a company's balances and rewinds its last load date.
func (s *Service) ClearCompany(ctx context.Context, p ClearParams) (model.Company, error) {
	c, err := s.Company(p.CompanyID)
	if err != nil {
		return model.Company{}, err
	}
	if err := confirm(c, p.ConfirmReference); err != nil {
		return model.Company{}, err
	}
	if p.SnapshotDate != "" {
		if _, err := calendar.Parse(p.SnapshotDate); err != nil {
			return model.Company{}, fmt.Errorf("snapshot date: %w", err)
		}
		c.LastLoadDate = p.SnapshotDate
	}
	c.SalesBalance = decimal.Zero
	c.PurchaseBalance = decimal.Zero

	next := make([]model.Company, len(s.companies))
	for i, row := range s.companies {
		if row.ID == c.ID {
			row = c
		}
		next[i] = row
	}
	s.companies = next

	s.logger.InfoContext(ctx, "company cleared", log.FieldCompanyID, c.ID, "snapshot", c.LastLoadDate)
	s.record(ctx, activity.ActionCompanyClear, "cleared back to "+c.LastLoadDate, c.Name)
	return c, nil
}

// DeleteCompany removes a company from the book.
func (s *Service) DeleteCompany(ctx context.Context, companyID, confirmRef string) error {
	c, err := s.Company(companyID)
	if err != nil {
		return err
	}
	if err := confirm(c, confirmRef); err != nil {
		return err
	}

	next := make([]model.Company, 0, len(s.companies)-1)
	for _, row := range s.companies {
		if row.ID != c.ID {
			next = append(next, row)
		}
	}
	s.companies = next
	delete(s.requested, c.ID)
	delete(s.issued, c.ID)

	s.logger.InfoContext(ctx, "company deleted", log.FieldCompanyID, c.ID)
	s.record(ctx, activity.ActionCompanyDelete, "", c.Name)
	return nil
}

// RequestRefresh asks for a fresh ledger load of a cloud company.
func (s *Service) RequestRefresh(ctx context.Context, companyID string) (synth.Connector, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return "", err
	}
	if c.Status != model.CompanyCloud {
		return "", fmt.Errorf("company %q is %s, not cloud: %w", c.ID, c.Status, ErrInvalid)
	}
	s.requested[c.ID] = true
	connector := synth.ConnectorFor(c)
	s.record(ctx, activity.ActionRefresh, "via "+string(connector), c.Name)
	return connector, nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateCompanyParams holds the fields of a new company.
type CreateCompanyParams struct {
	Name              string
	Reference         string
	Email             string
	ExternalReference string
	Currency          string
	// CreateRegistration also issues an onboarding link.
	CreateRegistration bool
}

func (p CreateCompanyParams) validate() error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "company name is required")
	}
	if strings.TrimSpace(p.Reference) == "" {
		problems = append(problems, "reference is required")
	}
	email := strings.TrimSpace(p.Email)
	switch {
	case email == "":
		problems = append(problems, "email is required")
	case !emailPattern.MatchString(email):
		problems = append(problems, "invalid email format")
	}
	if p.Currency != "" && !format.IsCurrency(p.Currency) {
		problems = append(problems, fmt.Sprintf("unknown currency %q", p.Currency))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// CreateCompany adds a cloud company with zero balances, loaded today. The
// registration is nil unless requested.
func (s *Service) CreateCompany(ctx context.Context, p CreateCompanyParams) (model.Company, *model.Registration, error) {
	if err := p.validate(); err != nil {
		return model.Company{}, nil, err
	}
	if p.Currency == "" {
		p.Currency = s.cfg.Dashboard.Currency
	}

	ids := make([]string, len(s.companies))
	for i, c := range s.companies {
		ids[i] = c.ID
	}
	now := s.now().UTC()
	c := model.Company{
		ID:              strconv.FormatInt(id.NextNumeric(ids), 10),
		Name:            strings.TrimSpace(p.Name),
		Email:           strings.TrimSpace(p.Email),
		Reference:       strings.TrimSpace(p.Reference),
		LastLoadDate:    now.Format(calendar.DateFormat),
		SalesBalance:    decimal.Zero,
		PurchaseBalance: decimal.Zero,
		Status:          model.CompanyCloud,
	}
	s.companies = append(append([]model.Company(nil), s.companies...), c)
	s.record(ctx, activity.ActionCompanyCreate, c.Reference, c.Name)

	if !p.CreateRegistration {
		return c, nil, nil
	}
	reg := s.issue(ctx, c, p.Currency, p.ExternalReference, now)
	return c, &reg, nil
}

// UpdateCompanyParams holds the editable fields of a company.
type UpdateCompanyParams struct {
	Name  string
	Email string
}

func (p UpdateCompanyParams) validate() error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "company name is required")
	}
	email := strings.TrimSpace(p.Email)
	switch {
	case email == "":
		problems = append(problems, "email is required")
	case !emailPattern.MatchString(email):
		problems = append(problems, "invalid email format")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// UpdateCompany changes a company's name and email.
func (s *Service) UpdateCompany(ctx context.Context, companyID string, p UpdateCompanyParams) (model.Company, error) {
	if _, err := s.Company(companyID); err != nil {
		return model.Company{}, err
	}
	if err := p.validate(); err != nil {
		return model.Company{}, err
	}

	var updated model.Company
	next := make([]model.Company, len(s.companies))
	for i, c := range s.companies {
		if c.ID == companyID {
			c.Name = strings.TrimSpace(p.Name)
			c.Email = strings.TrimSpace(p.Email)
			updated = c
		}
		next[i] = c
	}
	s.companies = next
	s.record(ctx, activity.ActionCompanyUpdate, updated.Email, updated.Name)
	return updated, nil
}

// RegistrationParams describes an onboarding link for an existing company.
type RegistrationParams struct {
	Currency          string // dashboard currency when empty
	ExternalReference string
}

// CreateRegistration issues a new onboarding link for a company. It is listed
// first in the company's detail from then on.
func (s *Service) CreateRegistration(ctx context.Context, companyID string, p RegistrationParams) (model.Registration, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return model.Registration{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = s.cfg.Dashboard.Currency
	}
	if !format.IsCurrency(currency) {
		return model.Registration{}, fmt.Errorf("%w: unknown currency %q", ErrInvalid, currency)
	}
	return s.issue(ctx, c, currency, p.ExternalReference, s.now().UTC()), nil
}

func (s *Service) issue(ctx context.Context, c model.Company, currency, externalRef string, now time.Time) model.Registration {
	reg := newRegistration(c.ID, currency, strings.TrimSpace(externalRef), now)
	s.issued[c.ID] = append([]model.Registration{reg}, s.issued[c.ID]...)
	s.record(ctx, activity.ActionRegistrationCreate, reg.Link, c.Name)
	return reg
}

func newRegistration(companyID, currency, externalRef string, now time.Time) model.Registration {
	q := url.Values{}
	q.Set("currency", currency)
	if externalRef != "" {
		q.Set("ext", externalRef)
	}
	return model.Registration{
		ID:          fmt.Sprintf("reg-%s-%d", companyID, now.UnixMilli()),
		CompanyID:   companyID,
		DateCreated: now.Format(time.RFC3339),
		DateExpires: now.AddDate(1, 0, 0).Format(time.RFC3339),
		Link:        seed.RegistrationBaseURL + companyID + "?" + q.Encode(),
	}
}
