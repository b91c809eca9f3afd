package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/enrich"
)

func TestEnrich(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	rows := enrich.ParseRows("reference,key,value\nacme001,sector,Manufacturing\nLUNA003,Freight\nNOPE999,x,y\n")
	matches, unmatched := svc.Enrich(ctx, "accounts.csv", rows)

	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].Company.ID)
	assert.Equal(t, map[string]string{"sector": "Manufacturing"}, matches[0].Values)
	assert.Equal(t, "3", matches[1].Company.ID)
	assert.Equal(t, map[string]string{enrich.DefaultKey: "Freight"}, matches[1].Values)
	assert.Equal(t, []string{"NOPE999"}, unmatched)

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionEnrich, entries[0].Action)
	assert.Equal(t, "matched 2 of 3 references", entries[0].Details)
	assert.Equal(t, "accounts.csv", entries[0].Subject)
}
