package domain

import "time"

const (
	// DefaultInterval is the quantization stride for candidate slot starts.
	DefaultInterval = 15 * time.Minute

	// DefaultBookingDuration is the window length the month projector offers.
	DefaultBookingDuration = 30 * time.Minute

	// DefaultIndexDuration is the coarser window length materialized for the
	// search index.
	DefaultIndexDuration = time.Hour
)

// RoundStartTime rounds start up to the nearest quantization boundary: the
// earliest instant at or after start whose minute component is a multiple of
// interval. An already-aligned start is returned unchanged.
func RoundStartTime(start time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		interval = DefaultInterval
	}
	step := int(interval / time.Minute)
	if step <= 0 || start.Minute()%step == 0 {
		return start
	}
	rounded := ((start.Minute() / step) + 1) * step
	base := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())
	return base.Add(time.Duration(rounded) * time.Minute)
}

// SliceAvailability cuts each declared block into fixed-duration candidate
// windows starting every interval. The windows deliberately overlap (a two
// hour block sliced at a 15 minute stride with hour-long windows yields
// 9:00-10:00, 9:15-10:15, ...) so a session can start at any quantization
// boundary, not only at the block's own edges. Consumers must not assume the
// result is disjoint.
func SliceAvailability(a Availability, interval, duration time.Duration) Availability {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if duration <= 0 {
		duration = DefaultBookingDuration
	}

	out := Availability{}
	for _, slot := range a.Sorted() {
		cursor := RoundStartTime(slot.From, interval)
		for !cursor.Add(duration).After(slot.To) {
			out = append(out, Timeslot{From: cursor, To: cursor.Add(duration)})
			cursor = cursor.Add(interval)
		}
	}
	return out
}
