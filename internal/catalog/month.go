package catalog

import "time"

// Month is one of the twelve ookcatalog_month enum values, in calendar
// order. The zero value is not a valid month.
type Month int

const (
	Janvier Month = iota + 1
	Fevrier
	Mars
	Avril
	Mai
	Juin
	Juillet
	Aout
	Septembre
	Octobre
	Novembre
	Decembre
)

// monthLabels are the enum labels exactly as created in the database.
// Matching against curated data is exact and case-sensitive: a row
// storing "janvier" never matches.
var monthLabels = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// Valid reports whether m is one of the twelve enum values.
func (m Month) Valid() bool {
	return m >= Janvier && m <= Decembre
}

// String returns the database enum label, or an empty string for an
// invalid month.
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthLabels[m-1]
}

// ParseMonth maps an enum label back to its Month. The lookup is
// exact: unknown or differently cased labels are reported as not
// found, never coerced.
func ParseMonth(label string) (Month, bool) {
	for i, l := range monthLabels {
		if l == label {
			return Month(i + 1), true
		}
	}
	return 0, false
}

// Next returns the following calendar month, wrapping December to
// January.
func (m Month) Next() Month {
	if m == Decembre {
		return Janvier
	}
	return m + 1
}

// Prev returns the preceding calendar month, wrapping January to
// December.
func (m Month) Prev() Month {
	if m == Janvier {
		return Decembre
	}
	return m - 1
}

// MonthOf converts a civil date to its catalog month.
func MonthOf(t time.Time) Month {
	return Month(t.Month())
}

// WindowFor computes the months currently in view for the update
// schedule: always the current month, plus the previous month during
// the first ten days and the next month from the 21st onward. The
// result keeps calendar order around today (previous, current, next).
func WindowFor(today time.Time) []Month {
	current := MonthOf(today)
	var window []Month
	if today.Day() <= 10 {
		window = append(window, current.Prev())
	}
	window = append(window, current)
	if today.Day() >= 21 {
		window = append(window, current.Next())
	}
	return window
}
