package doctor

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// Weekdays a doctor can be scheduled on. Sundays are closed.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseClock parses a zero-padded "HH:MM" wall-clock time.
func ParseClock(hm string) (time.Time, error) {
	if len(hm) != 5 {
		return time.Time{}, fmt.Errorf("invalid time %q", hm)
	}
	return time.Parse("15:04", hm)
}

// ValidateSchedule checks every availability entry before it is persisted.
func ValidateSchedule(entries []models.Availability) error {
	for i, e := range entries {
		if !IsWeekday(e.Day) {
			return httperr.ErrValidation(
				"invalid_schedule",
				fmt.Sprintf("schedule[%d]: day must be one of Monday..Saturday", i),
			)
		}

		start, err := ParseClock(e.StartTime)
		if err != nil {
			return httperr.ErrValidation("invalid_schedule", fmt.Sprintf("schedule[%d]: startTime must be HH:MM", i))
		}
		end, err := ParseClock(e.EndTime)
		if err != nil {
			return httperr.ErrValidation("invalid_schedule", fmt.Sprintf("schedule[%d]: endTime must be HH:MM", i))
		}

		if !start.Before(end) {
			return httperr.ErrValidation("invalid_schedule", fmt.Sprintf("schedule[%d]: startTime must be before endTime", i))
		}
	}
	return nil
}

// Window is a concrete working interval on a given date.
type Window struct {
	Start time.Time
	End   time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WindowsOn projects the weekly schedule onto date, in date's location,
// sorted by start.
func WindowsOn(schedule []models.Availability, date time.Time) []Window {
	day := date.Weekday().String()
	loc := date.Location()

	at := func(hm string) time.Time {
		t, _ := ParseClock(hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	var out []Window
	for _, e := range schedule {
		if e.Day != day {
			continue
		}
		if _, err := ParseClock(e.StartTime); err != nil {
			continue
		}
		if _, err := ParseClock(e.EndTime); err != nil {
			continue
		}
		w := Window{Start: at(e.StartTime), End: at(e.EndTime)}
		if w.Start.Before(w.End) {
			out = append(out, w)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// FreeSlots cuts every window into slot-sized pieces and drops the ones
// overlapping a booking. A booking occupies [start, start+slot).
func FreeSlots(windows []Window, booked []time.Time, slot time.Duration) []TimeSlot {
	slots := []TimeSlot{}
	if slot <= 0 {
		return slots
	}

	for _, w := range windows {
		for cur := w.Start; !cur.Add(slot).After(w.End); cur = cur.Add(slot) {
			slotStart := cur
			slotEnd := cur.Add(slot)

			conflict := false
			for _, b := range booked {
				if slotStart.Before(b.Add(slot)) && slotEnd.After(b) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	return slots
}
