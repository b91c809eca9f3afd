package simulate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/model"
)

// fixed replays a list of values, cycling when exhausted.
type fixed struct {
	vals []float64
	i    int
}

func (f *fixed) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

var now = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func existingRates() []model.ExchangeRate {
	return []model.ExchangeRate{
		{ID: "1", From: "GBP", To: "USD", Rate: decimal.RequireFromString("1.27"), Source: model.SourceManual},
		{ID: "4", From: "GBP", To: "JPY", Rate: decimal.RequireFromString("190.10"), Source: model.SourceManual},
		{ID: "legacy", From: "EUR", To: "GBP", Rate: decimal.RequireFromString("0.85"), Source: model.SourceManual},
	}
}

func TestImportRatesLendscape(t *testing.T) {
	existing := existingRates()
	all, fresh, err := ImportRates(&fixed{vals: []float64{0, 0.5, 0.25}}, existing, model.SourceLendscape, now)
	require.NoError(t, err)

	require.Len(t, fresh, 3)
	assert.Equal(t, "5", fresh[0].ID)
	assert.Equal(t, "6", fresh[1].ID)
	assert.Equal(t, "7", fresh[2].ID)
	assert.Equal(t, "GBP/JPY", fresh[0].Pair())
	assert.Equal(t, "USD/CAD", fresh[1].Pair())
	assert.Equal(t, "EUR/AUD", fresh[2].Pair())
	assert.Equal(t, "1", fresh[0].Rate.String())
	assert.Equal(t, "2", fresh[1].Rate.String())
	assert.Equal(t, "1.5", fresh[2].Rate.String())
	for _, r := range fresh {
		assert.Equal(t, model.SourceLendscape, r.Source)
		assert.Equal(t, "2025-08-20T12:00:00.000Z", r.LastUpdated)
	}

	// GBP/JPY is replaced, the others kept.
	require.Len(t, all, 5)
	var pairs []string
	for _, r := range all {
		pairs = append(pairs, r.Pair())
	}
	assert.Equal(t, []string{"GBP/USD", "EUR/GBP", "GBP/JPY", "USD/CAD", "EUR/AUD"}, pairs)

	assert.Len(t, existing, 3, "input untouched")
	assert.Equal(t, "190.1", existing[1].Rate.String())
}

func TestImportRatesRanges(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 20; i++ {
		_, fresh, err := ImportRates(src, nil, model.SourceOpenExchangeRates, now)
		require.NoError(t, err)
		require.Len(t, fresh, 3)
		assert.Equal(t, "1", fresh[0].ID)
		for _, r := range fresh {
			f := r.Rate.InexactFloat64()
			assert.GreaterOrEqual(t, f, 0.5)
			assert.LessOrEqual(t, f, 2.0)
		}
	}
}

func TestImportRatesUnsupported(t *testing.T) {
	_, _, err := ImportRates(NewSource(1), nil, model.SourceManual, now)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestNewSourceDeterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestTransactions(t *testing.T) {
	txs := Transactions(NewSource(3), "3", 12, now)
	require.Len(t, txs, 12)

	assert.Equal(t, "3-tx-1", txs[0].ID)
	assert.Equal(t, "CUST-1000", txs[0].CustomerRef)
	assert.Equal(t, "DOC-3-2000", txs[0].Document)

	for i, tx := range txs {
		assert.Equal(t, i%3 != 0, tx.Open, "item %d", i)
		if i%5 == 0 {
			assert.True(t, tx.Amount.IsNegative(), "item %d is a credit", i)
			assert.True(t, tx.Remaining.IsZero())
			assert.NotEqual(t, model.TypeInvoice, tx.Type)
		} else {
			assert.True(t, tx.Amount.IsPositive())
			assert.True(t, tx.Remaining.LessThanOrEqual(tx.Amount))
		}
		if !tx.Open {
			assert.True(t, tx.Remaining.IsZero())
		}
	}
	assert.Equal(t, model.TypeDebitAdjustment, txs[7].Type)
	assert.Equal(t, model.TypePayment, txs[0].Type)
	assert.Equal(t, model.TypeCreditAdjustment, txs[5].Type)
}

func TestCustomers(t *testing.T) {
	custs := Customers(NewSource(3), "9", 8)
	require.Len(t, custs, 8)
	assert.Equal(t, "9-cust-1", custs[0].ID)
	assert.Equal(t, "CUS-9-107", custs[7].Reference)
	assert.Equal(t, "17 High Street, Townsville", custs[7].Address)
	for _, c := range custs {
		assert.False(t, c.Outstanding.IsNegative())
		assert.True(t, c.Outstanding.LessThanOrEqual(decimal.NewFromInt(20000)))
	}
}
