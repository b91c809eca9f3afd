// Package table holds the typed sort, search and date-window helpers that
// every listing in the dashboard runs its rows through.
package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/openaccounting/oadmin/internal/calendar"
)

// ErrUnknownField is returned when a key is not declared in a Schema.
var ErrUnknownField = errors.New("unknown field")

// Kind is the declared semantic type of a field.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
)

// Field reads one column of a row. A false ok means the row has no value for
// the field; the field's empty value is used in its place.
type Field[T any] struct {
	Kind   Kind
	text   func(T) (string, bool)
	number func(T) (float64, bool)
}

// String declares a text field compared case-insensitively.
func String[T any](get func(T) string) Field[T] {
	return Field[T]{Kind: KindString, text: always(get)}
}

// OptionalString declares a text field that may be missing on some rows.
func OptionalString[T any](get func(T) (string, bool)) Field[T] {
	return Field[T]{Kind: KindString, text: get}
}

// Number declares a numeric field.
func Number[T any](get func(T) float64) Field[T] {
	return Field[T]{Kind: KindNumber, number: func(r T) (float64, bool) { return get(r), true }}
}

// Date declares an ISO date-string field compared by timestamp.
func Date[T any](get func(T) string) Field[T] {
	return Field[T]{Kind: KindDate, text: always(get)}
}

// OptionalDate declares a date field that may be missing on some rows.
func OptionalDate[T any](get func(T) (string, bool)) Field[T] {
	return Field[T]{Kind: KindDate, text: get}
}

func always[T any](get func(T) string) func(T) (string, bool) {
	return func(r T) (string, bool) { return get(r), true }
}

// Text returns the field rendered as searchable text.
func (f Field[T]) Text(row T) string {
	switch f.Kind {
	case KindNumber:
		n, ok := f.number(row)
		if !ok {
			return ""
		}
		return fmt.Sprint(n)
	default:
		s, ok := f.text(row)
		if !ok {
			return ""
		}
		return s
	}
}

// sortKey is a pre-computed comparison value for one row.
type sortKey struct {
	text string
	num  float64
}

func (f Field[T]) key(row T) sortKey {
	switch f.Kind {
	case KindNumber:
		n, ok := f.number(row)
		if !ok {
			n = 0
		}
		return sortKey{num: n}
	case KindDate:
		s, _ := f.text(row)
		t, err := calendar.Parse(s)
		if err != nil {
			// Missing and malformed dates sort as the earliest instant.
			return sortKey{num: math.Inf(-1)}
		}
		return sortKey{num: float64(t.UnixMilli())}
	default:
		s, _ := f.text(row)
		return sortKey{text: strings.ToLower(s)}
	}
}

func compareKeys(kind Kind, a, b sortKey) int {
	if kind == KindString {
		return strings.Compare(a.text, b.text)
	}
	return compareNumbers(a.num, b.num)
}

// compareNumbers orders NaN below every other value, including -Inf.
func compareNumbers(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Schema maps field names to their accessors.
type Schema[T any] map[string]Field[T]

func (s Schema[T]) field(name string) (Field[T], error) {
	f, ok := s[name]
	if !ok {
		return Field[T]{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Sort returns a new slice ordered by key. Rows with equal keys keep their
// input order.
func (s Schema[T]) Sort(rows []T, key string, dir Direction) ([]T, error) {
	f, err := s.field(key)
	if err != nil {
		return nil, err
	}

	keys := make([]sortKey, len(rows))
	idx := make([]int, len(rows))
	for i, r := range rows {
		keys[i] = f.key(r)
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool {
		c := compareKeys(f.Kind, keys[idx[i]], keys[idx[j]])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})

	out := make([]T, len(rows))
	for i, k := range idx {
		out[i] = rows[k]
	}
	return out, nil
}

// Filter returns the rows where any of fields contains term, ignoring case.
// A blank term keeps every row.
func (s Schema[T]) Filter(rows []T, term string, fields ...string) ([]T, error) {
	accessors := make([]Field[T], 0, len(fields))
	for _, name := range fields {
		f, err := s.field(name)
		if err != nil {
			return nil, err
		}
		accessors = append(accessors, f)
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(rows))
	if needle == "" {
		return append(out, rows...), nil
	}
	for _, r := range rows {
		for _, f := range accessors {
			if strings.Contains(strings.ToLower(f.Text(r)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

// FilterByDateWindow keeps rows whose date field falls inside w. Rows with a
// missing or malformed date are dropped.
func (s Schema[T]) FilterByDateWindow(rows []T, key string, w calendar.Window) ([]T, error) {
	f, err := s.field(key)
	if err != nil {
		return nil, err
	}
	if f.Kind != KindDate {
		return nil, fmt.Errorf("field %q is %s, not a date", key, f.Kind)
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		iso, ok := f.text(r)
		if !ok {
			continue
		}
		if w.ContainsISO(iso) {
			out = append(out, r)
		}
	}
	return out, nil
}
