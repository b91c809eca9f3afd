package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/table"
)

func TestAddOption(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)

	o, err := svc.AddOption(ctx, OptionParams{Name: " support-email ", Value: "help@example.com", Description: "Where users write to"})
	require.NoError(t, err)
	assert.Equal(t, "11", o.ID)
	assert.Equal(t, "support-email", o.Name)
	assert.Equal(t, "2025-08-20T12:00:00.000Z", o.LastUpdated)

	page, err := svc.ConfigOptions(table.Query{Search: "support"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, o, page.Rows[0])

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionOptionAdd, entries[0].Action)
	assert.Equal(t, "support-email=help@example.com", entries[0].Details)
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		p    OptionParams
		want []string
	}{
		{"missing name", OptionParams{Value: "1"}, []string{"name is required"}},
		{"blank value", OptionParams{Name: "x", Value: "   "}, []string{"value is required"}},
		{"both missing", OptionParams{Description: "only a description"}, []string{"name is required", "value is required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.AddOption(context.Background(), tt.p)
			require.ErrorIs(t, err, ErrInvalid)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}

			_, err = svc.UpdateOption(context.Background(), "1", tt.p)
			require.ErrorIs(t, err, ErrInvalid)
			o, err := svc.ConfigOption("1")
			require.NoError(t, err)
			assert.Equal(t, "GBP", o.Value)
		})
	}
}

func TestUpdateOption(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)

	o, err := svc.UpdateOption(ctx, "7", OptionParams{Name: "data-retention-days", Value: "120"})
	require.NoError(t, err)
	assert.Equal(t, "120", o.Value)
	assert.Equal(t, "Number of days to retain data", o.Description, "blank description keeps the old one")
	assert.Equal(t, "2025-08-20T12:00:00.000Z", o.LastUpdated)

	o, err = svc.UpdateOption(ctx, "7", OptionParams{Name: "data-retention-days", Value: "120", Description: "Days kept"})
	require.NoError(t, err)
	assert.Equal(t, "Days kept", o.Description)

	_, err = svc.UpdateOption(ctx, "404", OptionParams{Name: "a", Value: "b"})
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, activity.ActionOptionUpdate, entries[0].Action)
	assert.Equal(t, "7", entries[0].Subject)
}

func TestDeleteOption(t *testing.T) {
	ctx := context.Background()
	svc, alog := newTestService(t)

	require.NoError(t, svc.DeleteOption(ctx, "5"))
	_, err := svc.ConfigOption("5")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteOption(ctx, "5"), ErrNotFound)

	page, err := svc.ConfigOptions(table.Query{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 9, page.Total)

	entries, err := alog.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionOptionDelete, entries[0].Action)
	assert.Equal(t, "enable-notifications", entries[0].Details)
}
