package model

import (
	"strconv"
	"strings"
	"time"
)

// Storage layouts for dates and clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Weekday is one of the seven fixed day tokens stored in the schedule table.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lists the day tokens in canonical order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the position of d in Weekdays, or -1 if d is not a valid token.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven day tokens.
func (d Weekday) Valid() bool { return d.Index() >= 0 }

// WeekdayOf returns the day token for the calendar day of t.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday=0.
	return Weekdays[(int(t.Weekday())+6)%7]
}

// ParseWeekday accepts a day token or a full English day name, in any case.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) >= 3 {
		prefix := s[:3]
		for _, w := range Weekdays {
			if strings.ToLower(string(w)) == prefix &&
				(len(s) == 3 || strings.HasPrefix(strings.ToLower(fullDayName(w)), s)) {
				return w, nil
			}
		}
	}
	return "", NewValidationError("day", "must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun")
}

func fullDayName(w Weekday) string {
	return time.Weekday((w.Index() + 1) % 7).String()
}

// DateOf strips the clock from t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, NewValidationError("deadline", "must be in YYYY-MM-DD format")
	}
	return t, nil
}

// ParseClock parses an HH:MM clock time and returns it zero-padded, so
// stored times sort lexically.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", NewValidationError("time", "must be in HH:MM format")
	}
	return t.Format(ClockLayout), nil
}

// ParseUnits parses a credit-unit count. An empty string means zero.
func ParseUnits(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, NewValidationError("units", "must be a non-negative whole number")
	}
	return n, nil
}
