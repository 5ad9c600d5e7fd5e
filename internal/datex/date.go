// Package datex contains helpers for the ISO calendar-date format
// (YYYY-MM-DD) used by the account API.
package datex

import "time"

// ISODateLayout is the wire format for calendar dates.
const ISODateLayout = "2006-01-02"

// Format renders t as an ISO calendar date, dropping the time of day.
func Format(t time.Time) string {
	return t.Format(ISODateLayout)
}

// Parse reads an ISO calendar date. The result is midnight UTC of that day,
// so formatting it again yields the same string regardless of local zone.
func Parse(s string) (time.Time, error) {
	return time.Parse(ISODateLayout, s)
}
