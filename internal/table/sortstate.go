package table

import (
	"fmt"
	"strings"
)

// Direction is the order a column is sorted in.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q", s)
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState is the active sort column and its direction.
type SortState struct {
	Key       string
	Direction Direction
}

// NextSortState applies a header click: the active column flips direction,
// any other column becomes active in ascending order.
func NextSortState(current SortState, clicked string) SortState {
	if clicked == current.Key {
		return SortState{Key: current.Key, Direction: current.Direction.Flip()}
	}
	return SortState{Key: clicked, Direction: Ascending}
}
