// Package timeutil converts durations to the nanosecond timestamps used by
// the canister runtime.
package timeutil

import "time"

// DayInSeconds is the number of seconds in a day.
const DayInSeconds = 60 * 60 * 24

// HoursToNanoseconds converts hours to nanoseconds.
func HoursToNanoseconds(hours uint64) uint64 {
	return hours * uint64(time.Hour)
}

// Nanos converts t to runtime nanoseconds.
func Nanos(t time.Time) uint64 {
	return uint64(t.UnixNano())
}

// FromNanos converts runtime nanoseconds to a time.Time.
func FromNanos(ns uint64) time.Time {
	return time.Unix(0, int64(ns))
}
