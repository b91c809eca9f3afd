package format

import (
	"github.com/openaccounting/oadmin/internal/calendar"
)

// DateStyle selects a date layout.
type DateStyle string

const (
	// DateShort is en-GB numeric, e.g. 15/08/2025.
	DateShort DateStyle = "short"
	// DateMedium is e.g. 15 Aug 2025.
	DateMedium DateStyle = "medium"
	// DateTime is e.g. 15 Aug 2025, 10:30.
	DateTime DateStyle = "datetime"
	// MonthShort is the abbreviated month, e.g. Aug.
	MonthShort DateStyle = "month"
)

// Placeholder stands in for dates that cannot be displayed.
const Placeholder = "-"

var layouts = map[DateStyle]string{
	DateShort:  "02/01/2006",
	DateMedium: "2 Jan 2006",
	DateTime:   "2 Jan 2006, 15:04",
	MonthShort: "Jan",
}

// Date renders iso in style. It fails with calendar.ErrInvalidDate when iso
// does not parse; unknown styles fall back to DateShort.
func Date(iso string, style DateStyle) (string, error) {
	t, err := calendar.Parse(iso)
	if err != nil {
		return "", err
	}
	layout, ok := layouts[style]
	if !ok {
		layout = layouts[DateShort]
	}
	return t.Format(layout), nil
}

// DateOr renders iso like Date, substituting fallback for unparseable input.
func DateOr(iso string, style DateStyle, fallback string) string {
	s, err := Date(iso, style)
	if err != nil {
		return fallback
	}
	return s
}
