package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/hawkerhub/hawker-reserve/internal/timeslot"
)

var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestValidateOK(t *testing.T) {
	if err := Validate("2026-03-11", "10:00", "11:00", noon); err != nil {
		t.Errorf("future date: error = %v, want nil", err)
	}
	if err := Validate("2026-03-10", "12:30", "13:00", noon); err != nil {
		t.Errorf("later today: error = %v, want nil", err)
	}
}

func TestValidatePastDate(t *testing.T) {
	if err := Validate("2026-03-09", "10:00", "11:00", noon); !errors.Is(err, ErrPastDate) {
		t.Errorf("error = %v, want ErrPastDate", err)
	}
	// Any time on a past date fails, even a late one.
	if err := Validate("2025-12-31", "23:00", "23:30", noon); !errors.Is(err, ErrPastDate) {
		t.Errorf("error = %v, want ErrPastDate", err)
	}
}

func TestValidatePastTime(t *testing.T) {
	if err := Validate("2026-03-10", "11:00", "12:00", noon); !errors.Is(err, ErrPastTime) {
		t.Errorf("earlier today: error = %v, want ErrPastTime", err)
	}
	// Start exactly equal to the current time is also rejected.
	if err := Validate("2026-03-10", "12:00", "13:00", noon); !errors.Is(err, ErrPastTime) {
		t.Errorf("start == now: error = %v, want ErrPastTime", err)
	}
}

func TestValidateInterval(t *testing.T) {
	if err := Validate("2026-03-11", "11:00", "10:00", noon); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("end before start: error = %v, want ErrInvalidInterval", err)
	}
	if err := Validate("2026-03-11", "11:00", "11:00", noon); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("zero-length: error = %v, want ErrInvalidInterval", err)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := Validate("10-03-2026", "10:00", "11:00", noon); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
	if err := Validate("2026-03-11", "10am", "11:00", noon); !errors.Is(err, timeslot.ErrInvalidTimeFormat) {
		t.Errorf("error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestAvailableSlots(t *testing.T) {
	// One reservation from 14:00 to 15:00 blocks the 14:00 and 14:30
	// slots; everything else inside operating hours stays open.
	reserved := []Interval{{Start: 14 * 60, End: 15 * 60}}
	slots, err := AvailableSlots(reserved)
	if err != nil {
		t.Fatalf("AvailableSlots error = %v", err)
	}
	got := map[string]bool{}
	for _, s := range slots {
		got[s.Time] = s.Available
	}
	if got["14:00"] || got["14:30"] {
		t.Errorf("14:00/14:30 should be unavailable, got %v/%v", got["14:00"], got["14:30"])
	}
	for _, free := range []string{"10:00", "13:30", "15:00", "21:30"} {
		if !got[free] {
			t.Errorf("slot %s should be available", free)
		}
	}
}

func TestAvailableSlotsEmpty(t *testing.T) {
	slots, err := AvailableSlots(nil)
	if err != nil {
		t.Fatalf("AvailableSlots error = %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s should be available with no reservations", s.Time)
		}
	}
}
