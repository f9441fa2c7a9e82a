// Package timeutil provides utility functions for working with local
// calendar dates.
package timeutil

import (
	"math"
	"time"
)

// DayLayout is the format for local calendar date keys.
const DayLayout = "2006-01-02"

// Round rounds a float value to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// DayKey formats a time as a local calendar date (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// PrevDay returns the calendar day immediately before t. It uses AddDate so
// daylight saving transitions can't skip a day.
func PrevDay(t time.Time) time.Time {
	return RoundToStart(t).AddDate(0, 0, -1)
}

// NextDay returns the calendar day immediately after t.
func NextDay(t time.Time) time.Time {
	return RoundToStart(t).AddDate(0, 0, 1)
}

// SecsToMinsAndSecs splits a seconds value into whole minutes and seconds.
func SecsToMinsAndSecs(seconds int) (mins, secs int) {
	return seconds / 60, seconds % 60
}
