package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Meeting is a confirmed, absolute-dated session between a volunteer and a
// student. The set of a person's meetings is the booked set every projection
// excludes against.
type Meeting struct {
	bun.BaseModel `bun:"table:meetings"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    string    `bun:"user_id,notnull"`
	Subject   string    `bun:"subject,notnull"`
	Notes     string    `bun:"notes"`
	StartTime time.Time `bun:"start_time,notnull"`
	EndTime   time.Time `bun:"end_time,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (m *Meeting) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if m.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			m.ID = id
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		m.UpdatedAt = now
	}
	return nil
}

func (m Meeting) Timeslot() Timeslot {
	return Timeslot{From: m.StartTime, To: m.EndTime}
}

// MeetingsAvailability collects the booked intervals of a meeting list.
func MeetingsAvailability(meetings []Meeting) Availability {
	out := make(Availability, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.Timeslot())
	}
	return out
}

// AvailabilitySlot is one interval of a person's declared weekly pattern. The
// endpoints are stored anchored to the shared reference week; only their
// weekday and time-of-day are meaningful.
type AvailabilitySlot struct {
	bun.BaseModel `bun:"table:availability_slots"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	UserID    string    `bun:"user_id,notnull"`
	StartTime time.Time `bun:"start_time,notnull"`
	EndTime   time.Time `bun:"end_time,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (s *AvailabilitySlot) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

// SlotsAvailability collects the declared intervals of a weekly pattern.
func SlotsAvailability(slots []AvailabilitySlot) Availability {
	out := make(Availability, 0, len(slots))
	for _, s := range slots {
		out = append(out, Timeslot{From: s.StartTime, To: s.EndTime})
	}
	return out
}
