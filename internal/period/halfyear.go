// Package period implements the half-year calendar arithmetic behind the
// recency scoring: ordinal half-year numbering per country and the
// half-open date bins used to turn a last-purchase date into a score.
package period

import (
	"fmt"
	"time"
)

// ErrUnsupportedCountry is returned for country codes outside the four
// recognized markets. Unknown countries are a configuration error and
// must never fall back silently to a default numbering.
var ErrUnsupportedCountry = fmt.Errorf("unsupported country code")

// baseNumbers anchors the ordinal numbering: the value is the half-year
// number of H1 2025 for each market.
var baseNumbers = map[string]int{
	"DE": 49,
	"AT": 37,
	"FR": 28,
	"CH": 35,
}

var baseHalfYearStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Info describes the half-year period a reference date falls into.
type Info struct {
	// Number is the ordinal half-year number for the reference date.
	Number int
	// PrevStart and PrevEnd bound the immediately preceding half-year
	// (Jan 1-Jun 30 or Jul 1-Dec 31).
	PrevStart time.Time
	PrevEnd   time.Time
}

// CurrentStart returns the first day of the half-year the reference date
// falls into.
func (i Info) CurrentStart() time.Time {
	return i.PrevStart.AddDate(0, 6, 0)
}

// CurrentEnd returns the last day of the half-year the reference date
// falls into. Dec 31 plus six months would normalize past Jun 30, so
// the end is derived from the next half-year's start instead.
func (i Info) CurrentEnd() time.Time {
	return i.CurrentStart().AddDate(0, 6, -1)
}

// ForCountry computes the half-year info for a reference date and a
// country code (DE, AT, FR, CH).
func ForCountry(reference time.Time, country string) (Info, error) {
	base, ok := baseNumbers[country]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}

	half := 0
	if reference.Month() > time.June {
		half = 1
	}
	number := base + (reference.Year()-baseHalfYearStart.Year())*2 + half

	var prevStart, prevEnd time.Time
	if half == 0 {
		prevStart = time.Date(reference.Year()-1, time.July, 1, 0, 0, 0, 0, time.UTC)
		prevEnd = time.Date(reference.Year()-1, time.December, 31, 0, 0, 0, 0, time.UTC)
	} else {
		prevStart = time.Date(reference.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		prevEnd = time.Date(reference.Year(), time.June, 30, 0, 0, 0, 0, time.UTC)
	}

	return Info{Number: number, PrevStart: prevStart, PrevEnd: prevEnd}, nil
}

// HalfYearStart returns Jan 1 or Jul 1 of the given date's year,
// depending on which half the date falls in.
func HalfYearStart(date time.Time) time.Time {
	month := time.January
	if date.Month() > time.June {
		month = time.July
	}
	return time.Date(date.Year(), month, 1, 0, 0, 0, 0, time.UTC)
}

// ReferenceWindows returns the start of the 3-5-years-ago window and the
// start of the last-2-years window, both aligned to half-year starts
// relative to today's half.
func ReferenceWindows(today time.Time) (fiveYearsAgo, twoYearsAgo time.Time) {
	start := HalfYearStart(today)
	fiveYearsAgo = start.AddDate(-5, 0, 0)
	twoYearsAgo = start.AddDate(-2, 0, 0)
	return fiveYearsAgo, twoYearsAgo
}
