package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the only deadline shape the pipeline understands
const DateLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a YYYY-MM-DD string. Any other shape is unknown, not an error.
func ParseDate(s string) (time.Time, bool) {
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as YYYY-MM-DD in t's own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsBefore reports whether the known deadline d falls strictly before the calendar day of now
func IsBefore(d time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}

// Separators between the start and end of a submission period
var periodSeparator = regexp.MustCompile(`[～〜~\-―]`)

var japaneseDate = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)

// DeadlineFromPeriod derives the closing date from a submission period such as
// "2025年4月1日～2025年5月31日". The text after the last separator is searched for
// a date; without a separator the whole text is. Returns "" when no date is found.
func DeadlineFromPeriod(period string) string {
	target := period
	if parts := periodSeparator.Split(period, -1); len(parts) > 1 {
		target = parts[len(parts)-1]
	}

	m := japaneseDate.FindStringSubmatch(fold(target))
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
}
