package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/format"
	"github.com/openaccounting/oadmin/internal/model"
)

var now = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func TestCompaniesUniqueAndFresh(t *testing.T) {
	a := Companies()
	require.Len(t, a, 12)

	ids := map[string]bool{}
	refs := map[string]bool{}
	for _, c := range a {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		assert.False(t, refs[c.Reference], "duplicate reference %s", c.Reference)
		ids[c.ID] = true
		refs[c.Reference] = true
	}

	a[0].Name = "changed"
	assert.Equal(t, "Acme Widgets", Companies()[0].Name)
}

func TestExchangeRatesUseKnownCurrencies(t *testing.T) {
	for _, r := range ExchangeRates() {
		assert.True(t, format.IsCurrency(r.From), r.Pair())
		assert.True(t, format.IsCurrency(r.To), r.Pair())
		assert.True(t, r.Rate.IsPositive(), r.Pair())
	}
}

func TestCloudConnections(t *testing.T) {
	conns := CloudConnections(now)
	require.Len(t, conns, 12)
	assert.Equal(t, "2025-08-20T11:55:00.000Z", conns[0].StartDate)
	assert.Equal(t, model.ConnectionQueued, conns[0].Status)
	assert.Equal(t, model.ConnectionExtracting, conns[1].Status)

	extracting := 0
	for _, c := range conns {
		if c.Status == model.ConnectionExtracting {
			extracting++
		}
		assert.Less(t, calendar.MinutesSince(now, c.StartDate), 60)
	}
	assert.Equal(t, 4, extracting)
}

func TestExtractFilesErrorsOnlyWhenFailed(t *testing.T) {
	for _, f := range ExtractFiles() {
		assert.Equal(t, f.Status == model.ExtractFailed, f.ErrorMessage != "", f.ID)
	}
}

func TestRegistrations(t *testing.T) {
	regs := Registrations("5", now, 3)
	require.Len(t, regs, 3)

	assert.Equal(t, "reg-5-1", regs[0].ID)
	assert.Equal(t, "2025-08-10T12:00:00.000Z", regs[0].DateCreated)
	assert.Equal(t, "2026-08-10T12:00:00.000Z", regs[0].DateExpires)
	assert.Equal(t, RegistrationBaseURL+"5?ref=1", regs[0].Link)
	assert.True(t, regs[0].Open())
	assert.True(t, regs[1].Open())
	assert.False(t, regs[2].Open())
	assert.Equal(t, "2025-08-10T12:00:00.000Z", regs[2].DateClosed)
}

func TestAdminsAndMetrics(t *testing.T) {
	assert.Len(t, Admins(), 3)
	assert.Len(t, Metrics(), 4)
	assert.Len(t, Activities(), 5)
}
