package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/id"
	"github.com/openaccounting/oadmin/internal/log"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/simulate"
)

// stampFormat is how LastUpdated values are written.
const stampFormat = "2006-01-02T15:04:05.000Z07:00"

// ImportRates pulls a fresh set of rates from source, replacing any existing
// rate for the same currency pair, and returns the imported rates.
func (s *Service) ImportRates(ctx context.Context, src simulate.Source, source model.RateSource) ([]model.ExchangeRate, error) {
	all, fresh, err := simulate.ImportRates(src, s.rates, source, s.now())
	if err != nil {
		return nil, err
	}
	s.rates = all

	s.logger.InfoContext(ctx, "exchange rates imported", log.FieldSource, string(source), log.FieldCount, len(fresh))
	s.record(ctx, activity.ActionRatesImported,
		fmt.Sprintf("imported %d rates from %s", len(fresh), source.Label()), "rates")
	return fresh, nil
}

// RateParams holds the editable fields of an exchange rate.
type RateParams struct {
	From   string
	To     string
	Rate   decimal.Decimal
	Source model.RateSource // manual when empty
}

func (p *RateParams) normalize() {
	p.From = strings.ToUpper(strings.TrimSpace(p.From))
	p.To = strings.ToUpper(strings.TrimSpace(p.To))
	if p.Source == "" {
		p.Source = model.SourceManual
	}
}

func (p RateParams) validate() error {
	var problems []string
	for _, c := range []struct{ label, code string }{{"from", p.From}, {"to", p.To}} {
		switch {
		case c.code == "":
			problems = append(problems, c.label+" currency is required")
		case !format.IsCurrency(c.code):
			problems = append(problems, fmt.Sprintf("unknown %s currency %q", c.label, c.code))
		}
	}
	if p.From != "" && p.From == p.To {
		problems = append(problems, "from and to currencies must be different")
	}
	if !p.Rate.IsPositive() {
		problems = append(problems, "rate must be a positive number")
	}
	switch p.Source {
	case model.SourceManual, model.SourceLendscape, model.SourceOpenExchangeRates:
	default:
		problems = append(problems, fmt.Sprintf("unknown rate source %q", p.Source))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ExchangeRate returns one rate by ID.
func (s *Service) ExchangeRate(rateID string) (model.ExchangeRate, error) {
	for _, r := range s.rates {
		if r.ID == rateID {
			return r, nil
		}
	}
	return model.ExchangeRate{}, fmt.Errorf("exchange rate %q: %w", rateID, ErrNotFound)
}

// AddRate appends a rate with the next numeric ID.
func (s *Service) AddRate(ctx context.Context, p RateParams) (model.ExchangeRate, error) {
	p.normalize()
	if err := p.validate(); err != nil {
		return model.ExchangeRate{}, err
	}

	ids := make([]string, len(s.rates))
	for i, r := range s.rates {
		ids[i] = r.ID
	}
	r := model.ExchangeRate{
		ID:          strconv.FormatInt(id.NextNumeric(ids), 10),
		From:        p.From,
		To:          p.To,
		Rate:        p.Rate,
		LastUpdated: s.now().UTC().Format(stampFormat),
		Source:      p.Source,
	}
	s.rates = append(append([]model.ExchangeRate(nil), s.rates...), r)
	s.record(ctx, activity.ActionRateAdd, r.Pair()+" "+r.Rate.String(), r.ID)
	return r, nil
}

// UpdateRate replaces the fields of an existing rate and stamps it.
func (s *Service) UpdateRate(ctx context.Context, rateID string, p RateParams) (model.ExchangeRate, error) {
	if _, err := s.ExchangeRate(rateID); err != nil {
		return model.ExchangeRate{}, err
	}
	p.normalize()
	if err := p.validate(); err != nil {
		return model.ExchangeRate{}, err
	}

	var updated model.ExchangeRate
	next := make([]model.ExchangeRate, len(s.rates))
	for i, r := range s.rates {
		if r.ID == rateID {
			r.From, r.To, r.Rate, r.Source = p.From, p.To, p.Rate, p.Source
			r.LastUpdated = s.now().UTC().Format(stampFormat)
			updated = r
		}
		next[i] = r
	}
	s.rates = next
	s.record(ctx, activity.ActionRateUpdate, updated.Pair()+" "+updated.Rate.String(), updated.ID)
	return updated, nil
}

// DeleteRate removes a rate.
func (s *Service) DeleteRate(ctx context.Context, rateID string) error {
	r, err := s.ExchangeRate(rateID)
	if err != nil {
		return err
	}
	next := make([]model.ExchangeRate, 0, len(s.rates)-1)
	for _, x := range s.rates {
		if x.ID != rateID {
			next = append(next, x)
		}
	}
	s.rates = next
	s.record(ctx, activity.ActionRateDelete, r.Pair(), r.ID)
	return nil
}
