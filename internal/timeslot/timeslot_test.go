package timeslot

import (
	"errors"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"10:00", 600},
		{"14:30", 870},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.in)
		if err != nil {
			t.Errorf("ToMinutes(%q) error = %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "09:0", "24:00", "12:60", "12-30", "ab:cd", "12:30:00"} {
		if _, err := ToMinutes(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ToMinutes(%q) error = %v, want ErrInvalidTimeFormat", in, err)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	if got := FromMinutes(600); got != "10:00" {
		t.Errorf("FromMinutes(600) = %q, want %q", got, "10:00")
	}
	if got := FromMinutes(870); got != "14:30" {
		t.Errorf("FromMinutes(870) = %q, want %q", got, "14:30")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{"disjoint", 600, 660, 720, 780, false},
		{"touching boundary is not overlap", 600, 660, 660, 720, false},
		{"partial", 600, 660, 630, 690, true},
		{"contained", 600, 720, 630, 660, true},
		{"identical", 600, 660, 600, 660, true},
		{"reverse touching", 660, 720, 600, 660, false},
	}
	for _, c := range cases {
		if got := Overlaps(c.startA, c.endA, c.startB, c.endB); got != c.want {
			t.Errorf("%s: Overlaps(%d,%d,%d,%d) = %v, want %v",
				c.name, c.startA, c.endA, c.startB, c.endB, got, c.want)
		}
	}
}

func TestContains(t *testing.T) {
	if !Contains(600, 660, 600) {
		t.Error("Contains should include the start boundary")
	}
	if Contains(600, 660, 660) {
		t.Error("Contains should exclude the end boundary")
	}
	if Contains(600, 660, 720) {
		t.Error("Contains should reject times after the interval")
	}
}

func TestEnumerateSlots(t *testing.T) {
	slots, err := EnumerateSlots("10:00", "12:00", 30)
	if err != nil {
		t.Fatalf("EnumerateSlots error = %v", err)
	}
	want := []string{"10:00", "10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot[%d] = %q, want %q", i, slots[i], want[i])
		}
	}
}

func TestEnumerateSlotsFullDay(t *testing.T) {
	slots, err := EnumerateSlots(DayStart, DayEnd, StepMinutes)
	if err != nil {
		t.Fatalf("EnumerateSlots error = %v", err)
	}
	// 10:00 through 21:30 at 30 minute spacing.
	if len(slots) != 24 {
		t.Errorf("got %d slots, want 24", len(slots))
	}
	if slots[0] != "10:00" || slots[len(slots)-1] != "21:30" {
		t.Errorf("slot range = [%s, %s], want [10:00, 21:30]", slots[0], slots[len(slots)-1])
	}
}

func TestEnumerateSlotsBadBounds(t *testing.T) {
	if _, err := EnumerateSlots("10", "22:00", 30); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("error = %v, want ErrInvalidTimeFormat", err)
	}
}
