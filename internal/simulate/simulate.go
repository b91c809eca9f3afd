// Package simulate produces one-shot random demo data. Every operation draws
// from an injected Source so tests can pin the output.
package simulate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openaccounting/oadmin/internal/id"
	"github.com/openaccounting/oadmin/internal/model"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed Source. Equal seeds give equal sequences.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSource seeds a Source from the clock.
func NewTimeSource(now time.Time) Source {
	return NewSource(uint64(now.UnixNano()))
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// cents rounds f to two places.
func cents(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// between returns a value in [lo, lo+width) rounded to two places.
func between(src Source, lo, width float64) decimal.Decimal {
	return cents(lo + src.Float64()*width)
}

// ErrUnsupportedSource is returned when rates cannot be imported from a source.
var ErrUnsupportedSource = errors.New("unsupported rate source")

// rateImport describes the pairs each import source refreshes.
type rateImport struct {
	from  []string
	to    []string
	lo    float64
	width float64
}

var rateImports = map[model.RateSource]rateImport{
	model.SourceLendscape:         {from: []string{"GBP", "USD", "EUR"}, to: []string{"JPY", "CAD", "AUD"}, lo: 1, width: 2},
	model.SourceOpenExchangeRates: {from: []string{"USD", "EUR", "GBP"}, to: []string{"CHF", "SEK", "NOK"}, lo: 0.5, width: 1.5},
}

// ImportRates simulates pulling three rates from source. New ids continue
// after the largest numeric id in existing, and any existing rate for the same
// pair is replaced. It returns the full new rate list and the imported rates;
// existing is not modified.
func ImportRates(src Source, existing []model.ExchangeRate, source model.RateSource, now time.Time) (all, fresh []model.ExchangeRate, err error) {
	plan, ok := rateImports[source]
	if !ok {
		return nil, nil, fmt.Errorf("importing from %q: %w", source, ErrUnsupportedSource)
	}

	ids := make([]string, len(existing))
	for i, r := range existing {
		ids[i] = r.ID
	}
	next := id.NextNumeric(ids)

	stamp := now.UTC().Format(isoMillis)
	fresh = make([]model.ExchangeRate, 0, len(plan.from))
	pairs := make(map[string]bool, len(plan.from))
	for i := range plan.from {
		r := model.ExchangeRate{
			ID:          strconv.FormatInt(next+int64(i), 10),
			From:        plan.from[i],
			To:          plan.to[i],
			Rate:        between(src, plan.lo, plan.width),
			LastUpdated: stamp,
			Source:      source,
		}
		pairs[r.Pair()] = true
		fresh = append(fresh, r)
	}

	all = make([]model.ExchangeRate, 0, len(existing)+len(fresh))
	for _, r := range existing {
		if !pairs[r.Pair()] {
			all = append(all, r)
		}
	}
	return append(all, fresh...), fresh, nil
}

// dateWithin returns now shifted by a random whole number of days in
// (-days, +days).
func dateWithin(src Source, now time.Time, days int) string {
	delta := int((src.Float64()*2 - 1) * float64(days))
	return now.AddDate(0, 0, delta).UTC().Format(isoMillis)
}

var negativeTypes = []model.TransactionType{model.TypePayment, model.TypeCreditNote, model.TypeCreditAdjustment}

// Transactions generates count ledger items for a company: two in three open,
// one in five a credit.
func Transactions(src Source, companyID string, count int, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		open := i%3 != 0
		negative := i%5 == 0
		base := between(src, 200, 5000)

		amount := base
		typ := model.TypeInvoice
		if negative {
			amount = base.Neg()
			typ = negativeTypes[i%len(negativeTypes)]
		} else if i%7 == 0 {
			typ = model.TypeDebitAdjustment
		}

		remaining := decimal.Zero
		if open && !negative {
			remaining = cents(base.InexactFloat64() * src.Float64())
		}

		out = append(out, model.Transaction{
			ID:           id.FormatTransactionID(companyID, i+1),
			CustomerName: id.FormatCustomerName(i + 1),
			CustomerRef:  id.FormatCustomerCode(i),
			Amount:       amount,
			Remaining:    remaining,
			Document:     id.FormatDocument(companyID, i),
			DueDate:      dateWithin(src, now, 60),
			Open:         open,
			Type:         typ,
			Notified:     i%2 == 0,
			DocumentDate: dateWithin(src, now, 90),
			EntryDate:    dateWithin(src, now, 90),
		})
	}
	return out
}

// Customers generates count debtors for a company with random outstanding
// balances up to 20,000.
func Customers(src Source, companyID string, count int) []model.Customer {
	out := make([]model.Customer, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, model.Customer{
			ID:          id.FormatCustomerID(companyID, i+1),
			Name:        id.FormatCustomerName(i + 1),
			Reference:   id.FormatCustomerRef(companyID, i),
			Outstanding: between(src, 0, 20000),
			Address:     id.FormatAddress(i),
			Notified:    i%2 == 0,
		})
	}
	return out
}
