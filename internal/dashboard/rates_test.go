package dashboard

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/table"
)

func TestAddRate(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)

	r, err := svc.AddRate(ctx, RateParams{From: " nzd", To: "gbp ", Rate: decimal.RequireFromString("0.47")})
	require.NoError(t, err)
	assert.Equal(t, "11", r.ID)
	assert.Equal(t, "NZD/GBP", r.Pair())
	assert.Equal(t, model.SourceManual, r.Source)
	assert.Equal(t, "2025-08-20T12:00:00.000Z", r.LastUpdated)

	page, err := svc.ExchangeRates(table.Query{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionRateAdd, entries[0].Action)
	assert.Equal(t, "NZD/GBP 0.47", entries[0].Details)
	assert.Equal(t, "11", entries[0].Subject)
}

func TestAddRate_NextIDSkipsGaps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	require.NoError(t, svc.DeleteRate(ctx, "10"))

	r, err := svc.AddRate(ctx, RateParams{From: "GBP", To: "SEK", Rate: decimal.NewFromInt(13)})
	require.NoError(t, err)
	assert.Equal(t, "10", r.ID, "ids follow the largest remaining id")
}

func TestRateValidation(t *testing.T) {
	tests := []struct {
		name string
		p    RateParams
		want string
	}{
		{"zero rate", RateParams{From: "GBP", To: "USD"}, "rate must be a positive number"},
		{"negative rate", RateParams{From: "GBP", To: "USD", Rate: decimal.NewFromInt(-2)}, "rate must be a positive number"},
		{"same currency", RateParams{From: "GBP", To: "gbp", Rate: decimal.NewFromInt(1)}, "from and to currencies must be different"},
		{"missing from", RateParams{To: "USD", Rate: decimal.NewFromInt(1)}, "from currency is required"},
		{"missing to", RateParams{From: "USD", Rate: decimal.NewFromInt(1)}, "to currency is required"},
		{"unknown currency", RateParams{From: "GBP", To: "XYZ", Rate: decimal.NewFromInt(1)}, `unknown to currency "XYZ"`},
		{"unknown source", RateParams{From: "GBP", To: "USD", Rate: decimal.NewFromInt(1), Source: "fax"}, `unknown rate source "fax"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, alog := newTestService(t)
			_, err := svc.AddRate(context.Background(), tt.p)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)

			_, err = svc.UpdateRate(context.Background(), "1", tt.p)
			require.ErrorIs(t, err, ErrInvalid)

			page, err := svc.ExchangeRates(table.Query{PageSize: 100})
			require.NoError(t, err)
			assert.Equal(t, 10, page.Total)
			entries, err := alog.Read()
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestUpdateRate(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)
	before, err := svc.ExchangeRates(table.Query{PageSize: 100})
	require.NoError(t, err)

	r, err := svc.UpdateRate(ctx, "3", RateParams{From: "USD", To: "GBP", Rate: decimal.RequireFromString("0.81"), Source: model.SourceLendscape})
	require.NoError(t, err)
	assert.Equal(t, "3", r.ID)
	assert.True(t, r.Rate.Equal(decimal.RequireFromString("0.81")))
	assert.Equal(t, "2025-08-20T12:00:00.000Z", r.LastUpdated)

	got, err := svc.ExchangeRate("3")
	require.NoError(t, err)
	assert.Equal(t, r, got)
	for _, old := range before.Rows {
		if old.ID == "3" {
			assert.Equal(t, "0.79", old.Rate.String(), "earlier pages are not rewritten")
		}
	}

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionRateUpdate, entries[0].Action)

	_, err = svc.UpdateRate(ctx, "404", RateParams{From: "USD", To: "GBP", Rate: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRate(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)

	require.NoError(t, svc.DeleteRate(ctx, "2"))
	_, err := svc.ExchangeRate("2")
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := svc.ExchangeRates(table.Query{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 9, page.Total)

	assert.ErrorIs(t, svc.DeleteRate(ctx, "2"), ErrNotFound)

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionRateDelete, entries[0].Action)
	assert.Equal(t, "GBP/EUR", entries[0].Details)
}
