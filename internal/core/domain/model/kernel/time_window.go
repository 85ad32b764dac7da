package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// secondsPerDay bounds a time-of-day value: windows live inside one day.
const secondsPerDay = 24 * 60 * 60

// ErrTimeWindowIsNotConstructed is returned when using an improperly
// initialized TimeWindow.
var ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow or ParseTimeWindow")

// TimeWindow is a value object representing a time-of-day interval in
// seconds from midnight. Windows are treated as half-open intervals
// [Start, End): two windows overlap iff a.Start < b.End and b.Start < a.End,
// so windows that merely touch (09:00-10:00 and 10:00-11:00) do not overlap.
//
// A window must satisfy 0 <= start < end < 86400. The wire representation
// is "HH:MM-HH:MM".
type TimeWindow struct {
	start int
	end   int

	guard guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from start and end in seconds from
// midnight. Returns a range error if either bound falls outside the day or
// the window is empty or inverted.
func NewTimeWindow(start, end int) (TimeWindow, error) {
	if start < 0 || start >= secondsPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("start", start, 0, secondsPerDay-1)
	}
	if end <= start || end >= secondsPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("end", end, start+1, secondsPerDay-1)
	}

	return TimeWindow{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseTimeWindow parses the "HH:MM-HH:MM" wire format.
func ParseTimeWindow(s string) (TimeWindow, error) {
	var startHours, startMinutes, endHours, endMinutes int

	n, err := fmt.Sscanf(s, "%2d:%2d-%2d:%2d", &startHours, &startMinutes, &endHours, &endMinutes)
	if err != nil || n != 4 || len(s) != 11 {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window must be in format HH:MM-HH:MM",
			fmt.Errorf("cannot parse %q", s),
		)
	}
	if startMinutes > 59 || endMinutes > 59 || startHours > 23 || endHours > 23 {
		return TimeWindow{}, errs.NewValueIsInvalidError("time window must be in format HH:MM-HH:MM")
	}

	return NewTimeWindow(
		startHours*3600+startMinutes*60,
		endHours*3600+endMinutes*60,
	)
}

// Validate checks the TimeWindow was properly constructed.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Start returns the window start in seconds from midnight.
func (w TimeWindow) Start() int {
	return w.start
}

// End returns the window end in seconds from midnight.
func (w TimeWindow) End() int {
	return w.end
}

// Overlaps reports whether two windows share any time. The comparison is
// strict, so adjacent windows do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start < other.end && other.start < w.end
}

// IsEqual compares two windows by their (start, end) natural key.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start == other.start && w.end == other.end
}

// String formats the window as "HH:MM-HH:MM".
func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.start/3600, (w.start%3600)/60,
		w.end/3600, (w.end%3600)/60,
	)
}

// AnyWindowsOverlap reports whether any window in a overlaps any window
// in b. Used to match a courier's working hours against an order's
// delivery hours and to re-test run contents on courier updates.
func AnyWindowsOverlap(a, b []TimeWindow) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa.Overlaps(wb) {
				return true
			}
		}
	}
	return false
}
