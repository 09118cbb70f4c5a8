package types

import (
	"time"
)

// DateLayout is the calendar-day string format stored alongside timestamps
// (soldDateString, returnDateString, createdAtString).
const DateLayout = "2006-01-02"

// DateString returns the calendar-day string for t.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// DateMonth returns the month number of t (1-12).
func DateMonth(t time.Time) int {
	return int(t.Month())
}

// DateYear returns the four-digit year of t.
func DateYear(t time.Time) int {
	return t.Year()
}
