package scheduling

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tutorbookapp/tutorbook-sub002/internal/domain"
	"github.com/tutorbookapp/tutorbook-sub002/internal/search"
	"github.com/tutorbookapp/tutorbook-sub002/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service owns the scheduling use cases: booking meetings, maintaining the
// declared weekly pattern, projecting the bookable month view, and keeping
// the external search index's availability snapshot current.
type Service struct {
	repo  store.ScheduleRepository
	index search.Client
	log   *slog.Logger
	now   func() time.Time
}

func NewService(repo store.ScheduleRepository, index search.Client, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:  repo,
		index: index,
		log:   log.With(slog.String("component", "service.scheduling")),
		now:   time.Now,
	}
}

type CreateMeetingInput struct {
	UserID         string
	Subject        string
	Notes          string
	StartTime      time.Time
	EndTime        time.Time
	IdempotencyKey string
}

func (s *Service) CreateMeeting(ctx context.Context, in CreateMeetingInput) (domain.Meeting, error) {
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return domain.Meeting{}, validationError("subject is required")
	}
	if in.UserID == "" {
		return domain.Meeting{}, validationError("user_id is required")
	}

	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	if end.Equal(start) || end.Before(start) {
		return domain.Meeting{}, validationError("end_time must be after start_time")
	}
	if end.Sub(start) > 24*time.Hour {
		return domain.Meeting{}, validationError("duration too long")
	}

	m := domain.Meeting{
		UserID:    in.UserID,
		Subject:   subject,
		Notes:     in.Notes,
		StartTime: start,
		EndTime:   end,
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" {
		if len(key) > 256 {
			return domain.Meeting{}, validationError("idempotency_key too long")
		}
		m.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("tutorbook:create_meeting:"+in.UserID+":"+key))
	}

	created, err := s.repo.CreateMeeting(ctx, m)
	if err != nil {
		return domain.Meeting{}, err
	}

	s.refreshIndexBestEffort(ctx, in.UserID)
	return created, nil
}

func (s *Service) ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error) {
	if userID == "" {
		return nil, validationError("user_id is required")
	}

	start := windowStart.UTC()
	end := windowEnd.UTC()
	if end.Equal(start) || end.Before(start) {
		return nil, validationError("window_end must be after window_start")
	}

	return s.repo.ListMeetings(ctx, userID, start, end)
}

func (s *Service) DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error {
	if userID == "" {
		return validationError("user_id is required")
	}
	if meetingID == uuid.Nil {
		return validationError("meeting_id is required")
	}

	if err := s.repo.DeleteMeeting(ctx, userID, meetingID); err != nil {
		return err
	}

	s.refreshIndexBestEffort(ctx, userID)
	return nil
}

// SetWeeklyAvailability replaces the person's declared weekly pattern. Each
// slot is snapped onto the shared reference week before storage, so callers
// may pass intervals dated anywhere; only weekday and time-of-day survive.
func (s *Service) SetWeeklyAvailability(ctx context.Context, userID string, slots domain.Availability) (domain.Availability, error) {
	if userID == "" {
		return nil, validationError("user_id is required")
	}

	rows := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.Valid() {
			return nil, validationError("availability slot must end after it starts")
		}
		if slot.Duration() > 24*time.Hour {
			return nil, validationError("availability slot too long")
		}

		from := domain.Date(slot.From.Weekday(), slot.From.Hour(), slot.From.Minute())
		rows = append(rows, domain.AvailabilitySlot{
			UserID:    userID,
			StartTime: from,
			EndTime:   from.Add(slot.Duration()),
		})
	}

	replaced, err := s.repo.ReplaceWeeklyAvailability(ctx, userID, rows)
	if err != nil {
		return nil, err
	}

	s.refreshIndexBestEffort(ctx, userID)
	return domain.SlotsAvailability(replaced), nil
}

func (s *Service) WeeklyAvailability(ctx context.Context, userID string) (domain.Availability, error) {
	if userID == "" {
		return nil, validationError("user_id is required")
	}

	slots, err := s.repo.ListWeeklyAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.SlotsAvailability(slots), nil
}

// MonthView projects the weekly pattern into the concrete bookable windows of
// one calendar month, excluding windows taken by existing meetings. It is
// derived fresh on every call; nothing here is cached across bookings.
func (s *Service) MonthView(ctx context.Context, userID string, month, year int) (domain.Availability, error) {
	if userID == "" {
		return nil, validationError("user_id is required")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	slots, err := s.repo.ListWeeklyAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}

	meetings, err := s.repo.ListMeetings(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return domain.MonthTimeslots(
		domain.SlotsAvailability(slots),
		month,
		year,
		domain.MeetingsAvailability(meetings),
	), nil
}

// RefreshSearchIndex recomputes the person's future-availability snapshot and
// pushes it to the search index. It must run after every booking or
// availability change; the snapshot is a projection, never a source of truth.
func (s *Service) RefreshSearchIndex(ctx context.Context, userID string) error {
	if userID == "" {
		return validationError("user_id is required")
	}

	now := s.now().UTC()
	until := now.AddDate(0, domain.DefaultHorizonMonths, 0)

	slots, err := s.repo.ListWeeklyAvailability(ctx, userID)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		// No declared pattern means the person is not discoverable at all,
		// which is distinct from a pattern that happens to be fully booked.
		return s.index.DeleteAvailability(ctx, userID)
	}

	meetings, err := s.repo.ListMeetings(ctx, userID, now, until.Add(domain.DefaultIndexDuration))
	if err != nil {
		return err
	}

	startTimes := domain.IndexableStartTimes(
		domain.SlotsAvailability(slots),
		domain.MeetingsAvailability(meetings),
		now,
		until,
		domain.DefaultInterval,
		domain.DefaultIndexDuration,
	)

	return s.index.UpsertAvailability(ctx, userID, startTimes)
}

// refreshIndexBestEffort runs after a successful write. A push failure leaves
// the index stale until the next change, which the write-through model
// tolerates, so the originating write is not rolled back.
func (s *Service) refreshIndexBestEffort(ctx context.Context, userID string) {
	if err := s.RefreshSearchIndex(ctx, userID); err != nil {
		s.log.Warn("search index refresh failed", slog.String("user_id", userID), slog.Any("err", err))
	}
}
