// Package booking holds the pure rules of the reservation ledger:
// temporal validation of a booking request and slot availability
// assembly. Keeping these rules out of the repository lets them be
// tested without a database and guarantees that every create path
// enforces the same checks.
package booking

import (
	"errors"
	"time"

	"github.com/hawkerhub/hawker-reserve/internal/timeslot"
)

// DateLayout is the calendar-date format used throughout the API.
// Dates are stored and compared as literal strings; no time zone
// conversion is applied.
const DateLayout = "2006-01-02"

var (
	// ErrPastDate is returned when the requested date is before today.
	ErrPastDate = errors.New("reservation date is in the past")
	// ErrPastTime is returned when the requested start time on today's
	// date is not after the current wall-clock time.
	ErrPastTime = errors.New("reservation start time is in the past")
	// ErrInvalidInterval is returned when end_time is not strictly
	// after start_time.
	ErrInvalidInterval = errors.New("end_time must be after start_time")
	// ErrInvalidDate is returned when the date is not a YYYY-MM-DD value.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Validate checks a booking request against the ledger's temporal
// rules. date must be YYYY-MM-DD, start and end must be HH:MM, end
// strictly after start, and the interval must not lie in the past
// relative to now. Zero-padded HH:MM strings compare correctly as
// plain strings, so today's cutoff uses a string comparison exactly
// like the stored values.
func Validate(date, start, end string, now time.Time) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	startMin, err := timeslot.ToMinutes(start)
	if err != nil {
		return err
	}
	endMin, err := timeslot.ToMinutes(end)
	if err != nil {
		return err
	}
	if endMin <= startMin {
		return ErrInvalidInterval
	}
	today := now.Format(DateLayout)
	if date < today {
		return ErrPastDate
	}
	if date == today && start <= now.Format("15:04") {
		return ErrPastTime
	}
	return nil
}

// Interval is an existing booking's [Start, End) window in minutes
// since midnight.
type Interval struct {
	Start int
	End   int
}

// Slot pairs a candidate start time with its availability.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailableSlots enumerates the operating-hours slot grid and marks a
// slot unavailable when its start time falls inside any of the given
// reserved intervals.
func AvailableSlots(reserved []Interval) ([]Slot, error) {
	starts, err := timeslot.EnumerateSlots(timeslot.DayStart, timeslot.DayEnd, timeslot.StepMinutes)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0, len(starts))
	for _, s := range starts {
		min, err := timeslot.ToMinutes(s)
		if err != nil {
			return nil, err
		}
		available := true
		for _, iv := range reserved {
			if timeslot.Contains(iv.Start, iv.End, min) {
				available = false
				break
			}
		}
		slots = append(slots, Slot{Time: s, Available: available})
	}
	return slots, nil
}
