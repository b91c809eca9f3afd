package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Window is an inclusive date range. A nil bound is unbounded.
type Window struct {
	From *time.Time
	To   *time.Time
}

// ParseWindow builds a Window from optional ISO bounds. Blank strings leave
// the bound open. From is used exactly as given and To runs through the end of
// its day.
func ParseWindow(from, to string) (Window, error) {
	var w Window
	if strings.TrimSpace(from) != "" {
		t, err := Parse(from)
		if err != nil {
			return Window{}, fmt.Errorf("parsing from bound: %w", err)
		}
		w.From = &t
	}
	if strings.TrimSpace(to) != "" {
		t, err := Parse(to)
		if err != nil {
			return Window{}, fmt.Errorf("parsing to bound: %w", err)
		}
		end := EndOfDay(t)
		w.To = &end
	}
	if w.From != nil && w.To != nil && w.To.Before(*w.From) {
		return Window{}, fmt.Errorf("window ends %s before it starts %s", to, from)
	}
	return w, nil
}

// IsOpen reports whether neither bound is set.
func (w Window) IsOpen() bool {
	return w.From == nil && w.To == nil
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// ContainsISO parses iso and checks it against the window. Dates that do not
// parse are never contained.
func (w Window) ContainsISO(iso string) bool {
	t, err := Parse(iso)
	if err != nil {
		return false
	}
	return w.Contains(t)
}
