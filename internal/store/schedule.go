package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tutorbookapp/tutorbook-sub002/internal/domain"
)

// ScheduleRepository is the persistence boundary for a person's booked
// meetings and declared weekly availability. Projections always re-derive
// from what it returns; nothing derived is stored back through it.
type ScheduleRepository interface {
	CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error)
	ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error)
	DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error

	ReplaceWeeklyAvailability(ctx context.Context, userID string, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error)
	ListWeeklyAvailability(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error)
}

// ScheduleTx exposes the same operations inside a user-scoped transaction.
type ScheduleTx interface {
	CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error)
	ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error)
	DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error

	ReplaceWeeklyAvailability(ctx context.Context, userID string, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error)
	ListWeeklyAvailability(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error)
}
