package table

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/calendar"
)

type row struct {
	ID      string
	Name    string
	Ref     string
	Balance float64
	Loaded  string
	Note    *string
}

var rowSchema = Schema[row]{
	"id":      String(func(r row) string { return r.ID }),
	"name":    String(func(r row) string { return r.Name }),
	"ref":     String(func(r row) string { return r.Ref }),
	"balance": Number(func(r row) float64 { return r.Balance }),
	"loaded":  Date(func(r row) string { return r.Loaded }),
	"note": OptionalString(func(r row) (string, bool) {
		if r.Note == nil {
			return "", false
		}
		return *r.Note, true
	}),
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSort_CaseInsensitive(t *testing.T) {
	got, err := rowSchema.Sort([]row{{Name: "Bravo"}, {Name: "alpha"}}, "name", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "Bravo"}, names(got))
}

func TestSort_Descending(t *testing.T) {
	in := []row{{Name: "b"}, {Name: "C"}, {Name: "a"}}
	got, err := rowSchema.Sort(in, "name", Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "b", "a"}, names(got))
}

func TestSort_Numbers(t *testing.T) {
	in := []row{
		{ID: "1", Balance: 10},
		{ID: "2", Balance: math.NaN()},
		{ID: "3", Balance: -5},
		{ID: "4", Balance: math.Inf(-1)},
	}
	got, err := rowSchema.Sort(in, "balance", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(got), "NaN sorts below every real number")

	got, err = rowSchema.Sort(in, "balance", Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "4", "2"}, ids(got))
}

func TestSort_DatesByTimestamp(t *testing.T) {
	in := []row{
		{ID: "1", Loaded: "2025-08-15T10:30:00Z"},
		{ID: "2", Loaded: "2025-08-15T09:30:00-02:00"}, // 11:30Z, later than 1
		{ID: "3", Loaded: "2025-08-01"},
	}
	got, err := rowSchema.Sort(in, "loaded", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids(got))
}

func TestSort_MalformedDatesFirst(t *testing.T) {
	in := []row{
		{ID: "1", Loaded: "2025-08-15"},
		{ID: "2", Loaded: "not a date"},
		{ID: "3", Loaded: "1970-01-01"},
		{ID: "4", Loaded: ""},
	}
	got, err := rowSchema.Sort(in, "loaded", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(got))

	got, err = rowSchema.Sort(in, "loaded", Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(got))
}

func TestSort_MissingFieldUsesEmptyValue(t *testing.T) {
	note := "zeta"
	in := []row{{ID: "1", Note: &note}, {ID: "2"}}
	got, err := rowSchema.Sort(in, "note", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestSort_Stable(t *testing.T) {
	in := []row{
		{ID: "1", Name: "same"},
		{ID: "2", Name: "SAME"},
		{ID: "3", Name: "other"},
		{ID: "4", Name: "Same"},
	}
	got, err := rowSchema.Sort(in, "name", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(got))

	got, err = rowSchema.Sort(in, "name", Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4", "3"}, ids(got))
}

func TestSort_OrderAndStabilityProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(30)
		in := make([]row, n)
		for i := range in {
			in[i] = row{ID: fmt.Sprint(i), Balance: float64(rng.IntN(5))}
		}
		for _, dir := range []Direction{Ascending, Descending} {
			got, err := rowSchema.Sort(in, "balance", dir)
			require.NoError(t, err)
			require.Len(t, got, n)
			for i := 1; i < len(got); i++ {
				a, b := got[i-1], got[i]
				if dir == Ascending {
					require.LessOrEqual(t, a.Balance, b.Balance)
				} else {
					require.GreaterOrEqual(t, a.Balance, b.Balance)
				}
				if a.Balance == b.Balance {
					var ai, bi int
					fmt.Sscan(a.ID, &ai)
					fmt.Sscan(b.ID, &bi)
					require.Less(t, ai, bi, "equal keys keep input order")
				}
			}
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []row{{Name: "b"}, {Name: "a"}}
	got, err := rowSchema.Sort(in, "name", Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(in))
	got[0].Name = "changed"
	assert.Equal(t, "b", in[0].Name)
}

func TestSort_UnknownField(t *testing.T) {
	_, err := rowSchema.Sort([]row{{}}, "missing", Ascending)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFilter(t *testing.T) {
	in := []row{
		{ID: "1", Name: "Acme Widgets", Ref: "ACM001"},
		{ID: "2", Name: "Lunar Logistics", Ref: "LUN002"},
		{ID: "3", Name: "Birch & Co", Ref: "BIR003"},
	}

	got, err := rowSchema.Filter(in, "  acme ", "name", "ref")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))

	got, err = rowSchema.Filter(in, "002", "name", "ref")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(got))

	got, err = rowSchema.Filter(in, "O", "name", "ref")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(got))

	got, err = rowSchema.Filter(in, "zzz", "name", "ref")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_BlankTermKeepsAll(t *testing.T) {
	in := []row{{ID: "1"}, {ID: "2"}}
	for _, term := range []string{"", "   ", "\t"} {
		got, err := rowSchema.Filter(in, term, "name")
		require.NoError(t, err)
		assert.Equal(t, ids(in), ids(got))
		got[0].ID = "x"
		assert.Equal(t, "1", in[0].ID, "result must not alias input")
	}
}

func TestFilter_Idempotent(t *testing.T) {
	in := []row{
		{ID: "1", Name: "Acme"},
		{ID: "2", Name: "acme two"},
		{ID: "3", Name: "Other"},
	}
	once, err := rowSchema.Filter(in, "ACME", "name")
	require.NoError(t, err)
	twice, err := rowSchema.Filter(once, "ACME", "name")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFilter_NumberAndMissingFields(t *testing.T) {
	in := []row{{ID: "1", Balance: 1250.5}, {ID: "2", Balance: 3}}
	got, err := rowSchema.Filter(in, "1250", "balance", "note")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_UnknownField(t *testing.T) {
	_, err := rowSchema.Filter(nil, "x", "nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFilterByDateWindow(t *testing.T) {
	in := []row{
		{ID: "feb", Loaded: "2025-02-01T00:00:00Z"},
		{ID: "last", Loaded: "2025-01-31T23:59:59Z"},
		{ID: "lastms", Loaded: "2025-01-31T23:59:59.999Z"},
		{ID: "first", Loaded: "2025-01-01"},
		{ID: "dec", Loaded: "2024-12-31T23:59:59.999Z"},
		{ID: "bad", Loaded: "yesterday"},
	}
	w, err := calendar.ParseWindow("2025-01-01", "2025-01-31")
	require.NoError(t, err)

	got, err := rowSchema.FilterByDateWindow(in, "loaded", w)
	require.NoError(t, err)
	assert.Equal(t, []string{"last", "lastms", "first"}, ids(got))
}

func TestFilterByDateWindow_TimedFrom(t *testing.T) {
	in := []row{
		{ID: "before", Loaded: "2025-01-01T11:59:59.999Z"},
		{ID: "at", Loaded: "2025-01-01T12:00:00Z"},
		{ID: "later", Loaded: "2025-03-01"},
	}
	w, err := calendar.ParseWindow("2025-01-01T12:00:00Z", "")
	require.NoError(t, err)

	got, err := rowSchema.FilterByDateWindow(in, "loaded", w)
	require.NoError(t, err)
	assert.Equal(t, []string{"at", "later"}, ids(got))
}

func TestFilterByDateWindow_OpenKeepsValidDates(t *testing.T) {
	in := []row{{ID: "1", Loaded: "2025-01-01"}, {ID: "2", Loaded: "??"}}
	got, err := rowSchema.FilterByDateWindow(in, "loaded", calendar.Window{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilterByDateWindow_NotADateField(t *testing.T) {
	_, err := rowSchema.FilterByDateWindow(nil, "name", calendar.Window{})
	assert.Error(t, err)
}
