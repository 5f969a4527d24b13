// Package timetricks holds calendar helpers. None of them read the clock; the
// caller passes the reference time.
package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat   = "20060102"
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
	shortDayFmt = "01/02"
	week        = 7 * 24 * time.Hour
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// Tomorrow reports whether t falls on the calendar day after ref.
func Tomorrow(t, ref time.Time) bool {
	y, m, d := ref.Date()
	next := time.Date(y, m, d+1, 12, 0, 0, 0, ref.Location())
	return SameDay(t.In(ref.Location()), next)
}

// TrimClock returns midnight at the start of t's calendar day.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SetClock returns t's calendar day at hour:minute.
func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, int(hour), int(minute), 0, 0, t.Location())
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// Day names t's calendar day relative to ref: "Today", "Tomorrow", the weekday
// if it is within the coming week, and a short date otherwise.
func Day(t, ref time.Time) string {
	t = t.In(ref.Location())
	switch {
	case SameDay(t, ref):
		return "Today"
	case Tomorrow(t, ref):
		return "Tomorrow"
	case t.After(ref) && t.Before(TrimClock(ref).Add(week)):
		return t.Weekday().String()
	default:
		return t.Format(shortDayFmt)
	}
}

// ParseDate reads a "2006-01-02" calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q not in fmt %q: %w", s, DateFormat, err)
	}
	return d, nil
}

// ParseClock reads a "15:04" wall clock time.
func ParseClock(s string) (hour, minute time.Duration, err error) {
	c, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("time %q not in fmt %q: %w", s, ClockFormat, err)
	}
	return time.Duration(c.Hour()), time.Duration(c.Minute()), nil
}
