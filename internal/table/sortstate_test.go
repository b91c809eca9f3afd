package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSortState(t *testing.T) {
	tests := []struct {
		current SortState
		clicked string
		want    SortState
	}{
		{SortState{"name", Ascending}, "name", SortState{"name", Descending}},
		{SortState{"name", Descending}, "name", SortState{"name", Ascending}},
		{SortState{"name", Descending}, "ref", SortState{"ref", Ascending}},
		{SortState{"name", Ascending}, "ref", SortState{"ref", Ascending}},
		{SortState{}, "name", SortState{"name", Ascending}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextSortState(tt.current, tt.clicked), "%+v click %q", tt.current, tt.clicked)
	}
}

func TestNextSortState_RoundTrip(t *testing.T) {
	for _, start := range []SortState{{"name", Ascending}, {"loaded", Descending}} {
		twice := NextSortState(NextSortState(start, start.Key), start.Key)
		assert.Equal(t, start, twice)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"":           Ascending,
		"asc":        Ascending,
		"Ascending":  Ascending,
		"DESC":       Descending,
		"descending": Descending,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
