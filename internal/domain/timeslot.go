package domain

import (
	"sort"
	"time"
)

// Timeslot is a half-open [From, To) span between two instants. All engine
// code treats the endpoints as local wall-clock values held in UTC; no zone
// conversion happens below this package.
type Timeslot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func NewTimeslot(from, to time.Time) Timeslot {
	return Timeslot{From: from, To: to}
}

// Valid reports whether the slot spans a positive amount of time.
func (t Timeslot) Valid() bool {
	return t.From.Before(t.To)
}

func (t Timeslot) Equal(o Timeslot) bool {
	return t.From.Equal(o.From) && t.To.Equal(o.To)
}

func (t Timeslot) Duration() time.Duration {
	return t.To.Sub(t.From)
}

// Overlaps reports whether the two slots share any time. Touching endpoints
// count as an overlap, so a 9:00-9:30 slot conflicts with 9:30-10:30.
func (t Timeslot) Overlaps(o Timeslot) bool {
	return !t.To.Before(o.From) && !t.From.After(o.To)
}

// OverlapsAllowBackToBack is the relaxed overlap test: back-to-back slots
// (one ending exactly when the other starts) are not considered overlapping.
func (t Timeslot) OverlapsAllowBackToBack(o Timeslot) bool {
	return t.To.After(o.From) && t.From.Before(o.To)
}

// Availability is an ordered collection of timeslots. Construction enforces
// no structural invariant; algorithms that need a from-sorted, non-overlapping
// set state that precondition themselves.
type Availability []Timeslot

// HasTimeslot reports whether the availability contains an exactly equal slot.
func (a Availability) HasTimeslot(t Timeslot) bool {
	for _, s := range a {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

// EqualTo reports set equality regardless of ordering.
func (a Availability) EqualTo(other Availability) bool {
	if len(a) != len(other) {
		return false
	}
	for _, s := range a {
		if !other.HasTimeslot(s) {
			return false
		}
	}
	return true
}

// Overlaps reports whether any slot in a overlaps any slot in other, touching
// endpoints included.
func (a Availability) Overlaps(other Availability) bool {
	for _, s := range a {
		for _, o := range other {
			if s.Overlaps(o) {
				return true
			}
		}
	}
	return false
}

// Sorted returns a copy ordered by start time.
func (a Availability) Sorted() Availability {
	out := make(Availability, len(a))
	copy(out, a)
	sort.Slice(out, func(i, j int) bool { return out[i].From.Before(out[j].From) })
	return out
}
