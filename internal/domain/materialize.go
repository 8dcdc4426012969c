package domain

import "time"

// DefaultHorizonMonths bounds how far ahead the materializer searches for a
// free occurrence of each weekly candidate window.
const DefaultHorizonMonths = 3

// IndexableStartTimes decides, for every weekly-recurring candidate window,
// whether it is ever bookable before the horizon, and returns one epoch
// millisecond start per still-bookable window: the nearest future occurrence
// that is not booked. Windows whose every occurrence inside the horizon is
// booked are dropped.
//
// The downstream search index only understands scalar range predicates, not
// recurrence, so this is a bounded snapshot of "is this weekly slot
// practically obtainable" and must be recomputed whenever the baseline or the
// booked set changes.
//
// Conflict checks use the back-to-back-allowed overlap rule: an occurrence
// that starts exactly when a booking ends is still free.
func IndexableStartTimes(baseline, booked Availability, now, until time.Time, interval, duration time.Duration) []int64 {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if duration <= 0 {
		duration = DefaultIndexDuration
	}
	if until.IsZero() {
		until = now.AddDate(0, DefaultHorizonMonths, 0)
	}

	out := make([]int64, 0)
	for _, window := range SliceAvailability(baseline, interval, duration) {
		from := NextDateWithDayAndTime(now, window.From.Weekday(), window.From.Hour(), window.From.Minute())
		for !from.After(until.Add(duration)) {
			occurrence := Timeslot{From: from, To: from.Add(duration)}
			free := true
			for _, b := range booked {
				if occurrence.OverlapsAllowBackToBack(b) {
					free = false
					break
				}
			}
			if free {
				out = append(out, occurrence.From.UnixMilli())
				break
			}
			from = from.AddDate(0, 0, 7)
		}
	}
	return out
}
