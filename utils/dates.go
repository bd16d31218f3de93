package utils

import (
	"strconv"
	"strings"
	"time"
)

// AddMonths adds whole calendar months, clamping the day-of-month to the
// last valid day of the target month: Jan 31 + 1 -> Feb 28 (or 29).
// time.AddDate would normalize Jan 31 + 1 month into March instead.
func AddMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) - 1 + months
	year := t.Year() + month/12
	month = month%12 + 1

	day := t.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseReminderDays parses a comma-separated list of day offsets such as
// "7,3,1". Blank, non-numeric and negative tokens are silently discarded;
// malformed input yields an empty list, never an error.
func ParseReminderDays(s string) []int {
	var days []int
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			continue
		}
		days = append(days, n)
	}
	return days
}
