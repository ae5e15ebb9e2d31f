// Package habit maintains the completion ledger and turns reminder policies
// into concrete notification firing points.
package habit

import (
	"fmt"

	"github.com/sadopc/focuskit/internal/store"
)

// FirePoint is one concrete daily firing time derived from a reminder
// policy, carrying the identifier used to cancel it individually.
type FirePoint struct {
	ID string
	At store.TimeOfDay
}

// Expand computes the firing points for a habit's reminder policy.
//
// Identifier space: daily reminders use the habit id itself, hourly
// reminders use "<id>_<hour>", multiple-times reminders use "<id>_<index>",
// so CancelPrefix(id) always reaches every point of one habit.
//
// Hourly expansion fires once per whole hour from From.Hour through To.Hour
// inclusive; the first point keeps From's minute, the rest fire at minute
// zero and To.Minute is ignored. That mirrors the shipped behavior exactly;
// changing it would shift delivery times users already rely on.
func Expand(h store.Habit) []FirePoint {
	if h.Reminder == nil {
		return nil
	}
	id := h.ID.String()

	switch p := h.Reminder; p.Interval {
	case store.ReminderDaily:
		return []FirePoint{{ID: id, At: p.At}}

	case store.ReminderHourly:
		var points []FirePoint
		for hour := p.From.Hour; hour <= p.To.Hour; hour++ {
			minute := 0
			if hour == p.From.Hour {
				minute = p.From.Minute
			}
			points = append(points, FirePoint{
				ID: fmt.Sprintf("%s_%d", id, hour),
				At: store.TimeOfDay{Hour: hour, Minute: minute},
			})
		}
		return points

	case store.ReminderMultiple:
		var points []FirePoint
		for i, at := range p.Times {
			points = append(points, FirePoint{
				ID: fmt.Sprintf("%s_%d", id, i),
				At: at,
			})
		}
		return points
	}
	return nil
}
