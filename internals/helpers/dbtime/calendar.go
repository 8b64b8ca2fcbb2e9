package dbtime

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DayOfWeekOf returns 0=Monday .. 6=Sunday.
func DayOfWeekOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FormatLocalDate uses the wall-clock fields of t in its own location.
func FormatLocalDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseLocalDate parses "YYYY-MM-DD" into that date at 12:00 in Location().
// Noon anchoring keeps AddDate(0,0,1) on the right calendar day across DST shifts.
func ParseLocalDate(s string) (time.Time, bool) {
	return ParseLocalDateIn(s, Location())
}

func ParseLocalDateIn(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), true
}

// IsValidDate reports whether s is a real "YYYY-MM-DD" calendar date.
func IsValidDate(s string) bool {
	_, ok := ParseLocalDate(s)
	return ok
}

// AddDays shifts a "YYYY-MM-DD" string; "" when s is not a date.
func AddDays(s string, days int) string {
	d, ok := ParseLocalDate(s)
	if !ok {
		return ""
	}
	return FormatLocalDate(d.AddDate(0, 0, days))
}

// CalculateSemesterEndDate: start + weeks*7 - 1 hari (inklusif).
func CalculateSemesterEndDate(startDate string, weeks int) string {
	return AddDays(startDate, weeks*7-1)
}

// DayOfWeekOfDate is DayOfWeekOf for a "YYYY-MM-DD" string; -1 when unparseable.
func DayOfWeekOfDate(s string) int {
	d, ok := ParseLocalDate(s)
	if !ok {
		return -1
	}
	return DayOfWeekOf(d)
}

// CombineDateAndTod builds the local instant for date + HH:MM.
func CombineDateAndTod(date string, tod Tod, loc *time.Location) (time.Time, bool) {
	d, ok := ParseLocalDateIn(date, loc)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, d.Location()), true
}

// EachDate calls fn for every date in [start, end] inclusive, stopping early when fn returns false.
// Unparseable bounds or start > end → no calls.
func EachDate(start, end string, fn func(date string, dow int) bool) {
	s, ok1 := ParseLocalDate(start)
	e, ok2 := ParseLocalDate(end)
	if !ok1 || !ok2 || s.After(e) {
		return
	}
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if !fn(FormatLocalDate(d), DayOfWeekOf(d)) {
			return
		}
	}
}

// MinDate / MaxDate compare zero-padded date strings lexicographically.
func MinDate(a, b string) string {
	if a < b {
		return a
	}
	return b
}

func MaxDate(a, b string) string {
	if a > b {
		return a
	}
	return b
}
