// Package timeslot converts between "HH:MM" time-of-day strings and
// comparable minute offsets, tests half-open interval overlap and
// enumerates bookable slot start times. All functions are pure; the
// reservation repository and handlers build on them for conflict
// detection and availability listings.
package timeslot

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when a time-of-day string is not a
// zero-padded 24-hour "HH:MM" value.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// Default operating window for hawker-centre tables and the spacing
// between bookable slot start times.
const (
	DayStart    = "10:00"
	DayEnd      = "22:00"
	StepMinutes = 30
)

// ToMinutes parses a zero-padded 24-hour "HH:MM" string into minutes
// since midnight. Seconds are not accepted.
func ToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	h, ok1 := twoDigits(hhmm[0], hhmm[1])
	m, ok2 := twoDigits(hhmm[3], hhmm[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return h*60 + m, nil
}

// FromMinutes formats minutes since midnight back into "HH:MM".
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Intervals that only touch at a boundary
// (one's end equals the other's start) do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Contains reports whether t falls inside the half-open interval
// [start, end). A slot whose start time is contained in an existing
// booking is unavailable.
func Contains(start, end, t int) bool {
	return t >= start && t < end
}

// EnumerateSlots returns the slot start times from dayStart (inclusive)
// up to dayEnd (exclusive) at step-minute spacing. A step of zero or
// less falls back to StepMinutes. The returned slice can be iterated
// any number of times; callers cross-reference each start against
// existing reservations to decide availability.
func EnumerateSlots(dayStart, dayEnd string, stepMinutes int) ([]string, error) {
	start, err := ToMinutes(dayStart)
	if err != nil {
		return nil, err
	}
	end, err := ToMinutes(dayEnd)
	if err != nil {
		return nil, err
	}
	if stepMinutes <= 0 {
		stepMinutes = StepMinutes
	}
	var slots []string
	for t := start; t < end; t += stepMinutes {
		slots = append(slots, FromMinutes(t))
	}
	return slots, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
