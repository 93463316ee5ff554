// Package dateutils provides the calendar arithmetic used to build rollup windows.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	MonthKeyLayout      = "2006-01"
	YearKeyLayout       = "2006"
)

// zonedFormats carry their own offset; the parsed instant is converted to the
// requested location afterwards.
var zonedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// CommonFormats are tried in order for strings without an explicit offset.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutWithMonth,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses dateStr in UTC and returns the time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	return ParseDateIn(dateStr, time.UTC)
}

// ParseDateIn parses dateStr in loc. Strings carrying an offset are converted to loc;
// the others are interpreted as wall-clock time in loc.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, string, error) {
	if loc == nil {
		loc = time.UTC
	}
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range zonedFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.In(loc), format, nil
		}
	}
	for _, format := range CommonFormats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay returns midnight of date's calendar day in date's location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns the Sunday 00:00 that opens the calendar week containing date.
func StartOfWeek(date time.Time) time.Time {
	day := StartOfDay(date)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfYear returns Jan 1 00:00 of date's year.
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// LastInstantBefore returns the latest representable instant before next, used as the
// inclusive end of a window.
func LastInstantBefore(next time.Time) time.Time {
	return next.Add(-time.Nanosecond)
}

// MonthsBetween counts calendar months from older to newer, ignoring days.
func MonthsBetween(older, newer time.Time) int {
	return (newer.Year()-older.Year())*12 + int(newer.Month()) - int(older.Month())
}
