// Package schedule holds the weekly time-slot picker: clock parsing,
// overlap detection and the add/edit/remove workflow.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Days are the selectable day labels in display order.
var Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Slot is a time interval [Start, End) on a day. Times are HH:MM, 24h.
type Slot struct {
	ID    string
	Day   string
	Start string
	End   string
	Date  string
}

var errBadClock = errors.New("invalid clock time")

// Minutes converts an HH:MM clock string to minutes since midnight.
func Minutes(clock string) (int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("%w %q", errBadClock, clock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w %q", errBadClock, clock)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w %q", errBadClock, clock)
	}
	return hours*60 + minutes, nil
}

// Clock formats minutes since midnight as HH:MM.
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether [s1,e1) and [s2,e2) share any minute.
// Adjacent intervals do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return !(e1 <= s2 || s1 >= e2)
}

// Conflicts reports whether [start,end) on day overlaps any slot on the
// same day, ignoring the slot with excludeID. Slots with unparsable times
// never conflict.
func Conflicts(slots []Slot, day, start, end, excludeID string) bool {
	s, err := Minutes(start)
	if err != nil {
		return false
	}
	e, err := Minutes(end)
	if err != nil {
		return false
	}
	for _, slot := range slots {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}
		if slot.Day != day {
			continue
		}
		ss, err1 := Minutes(slot.Start)
		se, err2 := Minutes(slot.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(s, e, ss, se) {
			return true
		}
	}
	return false
}

// TimeOptions lists the clock times of one day at step-minute intervals,
// starting at 00:00.
func TimeOptions(step int) []string {
	if step <= 0 {
		return nil
	}
	opts := make([]string, 0, 24*60/step)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += step {
			opts = append(opts, Clock(h*60+m))
		}
	}
	return opts
}

// FormatClock renders an HH:MM time as "9:05 AM".
func FormatClock(clock string) string {
	if clock == "" {
		return ""
	}
	total, err := Minutes(clock)
	if err != nil {
		return clock
	}
	hour, minute := total/60, total%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}
