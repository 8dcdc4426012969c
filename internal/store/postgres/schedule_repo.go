package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/tutorbookapp/tutorbook-sub002/internal/domain"
	"github.com/tutorbookapp/tutorbook-sub002/internal/store"
)

type ScheduleRepo struct {
	db *bun.DB
}

func NewScheduleRepo(db *bun.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

type scheduleTx struct {
	tx bun.Tx
}

func (r *ScheduleRepo) CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	var out domain.Meeting
	err := r.InUserTransaction(ctx, m.UserID, func(ctx context.Context, tx store.ScheduleTx) error {
		created, err := tx.CreateMeeting(ctx, m)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Meeting{}, err
	}
	return out, nil
}

func (r *ScheduleRepo) ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error) {
	var rows []domain.Meeting
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Where("start_time < ?", windowEnd).
		Where("end_time > ?", windowStart).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleRepo) DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error {
	return r.InUserTransaction(ctx, userID, func(ctx context.Context, tx store.ScheduleTx) error {
		return tx.DeleteMeeting(ctx, userID, meetingID)
	})
}

func (r *ScheduleRepo) ReplaceWeeklyAvailability(ctx context.Context, userID string, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
	var out []domain.AvailabilitySlot
	err := r.InUserTransaction(ctx, userID, func(ctx context.Context, tx store.ScheduleTx) error {
		replaced, err := tx.ReplaceWeeklyAvailability(ctx, userID, slots)
		if err != nil {
			return err
		}
		out = replaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleRepo) ListWeeklyAvailability(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error) {
	var rows []domain.AvailabilitySlot
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InUserTransaction serializes all schedule writes for one user behind an
// advisory lock, so a booking and an availability replace cannot interleave.
func (r *ScheduleRepo) InUserTransaction(ctx context.Context, userID string, fn func(ctx context.Context, tx store.ScheduleTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockUserSchedule(ctx, tx, userID); err != nil {
			return err
		}
		return fn(ctx, scheduleTx{tx: tx})
	})
}

func lockUserSchedule(ctx context.Context, tx bun.Tx, userID string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Exec(ctx)
	return err
}

func (r scheduleTx) CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	row := domain.Meeting{
		ID:        m.ID,
		UserID:    m.UserID,
		Subject:   m.Subject,
		Notes:     m.Notes,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	_, err := r.tx.NewInsert().Model(&row).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23P01" && pgErr.ConstraintName == "meetings_no_overlap" {
				return domain.Meeting{}, store.ErrConflict
			}
			if pgErr.Code == "23505" {
				var existing domain.Meeting
				selectErr := r.tx.NewSelect().
					Model(&existing).
					Where("id = ?", row.ID).
					Limit(1).
					Scan(ctx)
				if selectErr != nil {
					return domain.Meeting{}, err
				}

				if existing.UserID != m.UserID ||
					existing.Subject != m.Subject ||
					existing.Notes != m.Notes ||
					!existing.StartTime.Equal(m.StartTime) ||
					!existing.EndTime.Equal(m.EndTime) {
					return domain.Meeting{}, store.ErrIdempotencyConflict
				}

				return existing, nil
			}
		}
		return domain.Meeting{}, err
	}

	m.ID = row.ID
	return m, nil
}

func (r scheduleTx) ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error) {
	var rows []domain.Meeting
	err := r.tx.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Where("start_time < ?", windowEnd).
		Where("end_time > ?", windowStart).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r scheduleTx) DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error {
	res, err := r.tx.NewDelete().
		Model((*domain.Meeting)(nil)).
		Where("user_id = ?", userID).
		Where("id = ?", meetingID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r scheduleTx) ReplaceWeeklyAvailability(ctx context.Context, userID string, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
	_, err := r.tx.NewDelete().
		Model((*domain.AvailabilitySlot)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		return []domain.AvailabilitySlot{}, nil
	}

	rows := make([]domain.AvailabilitySlot, len(slots))
	for i, s := range slots {
		rows[i] = domain.AvailabilitySlot{
			ID:        s.ID,
			UserID:    userID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}

	_, err = r.tx.NewInsert().Model(&rows).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r scheduleTx) ListWeeklyAvailability(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error) {
	var rows []domain.AvailabilitySlot
	err := r.tx.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
