package http

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tutorbookapp/tutorbook-sub002/internal/domain"
	"github.com/tutorbookapp/tutorbook-sub002/internal/service/scheduling"
	"github.com/tutorbookapp/tutorbook-sub002/internal/store"
)

type Server struct {
	svc schedulingService
	log *slog.Logger
}

type schedulingService interface {
	CreateMeeting(ctx context.Context, in scheduling.CreateMeetingInput) (domain.Meeting, error)
	ListMeetings(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]domain.Meeting, error)
	DeleteMeeting(ctx context.Context, userID string, meetingID uuid.UUID) error
	SetWeeklyAvailability(ctx context.Context, userID string, slots domain.Availability) (domain.Availability, error)
	WeeklyAvailability(ctx context.Context, userID string) (domain.Availability, error)
	MonthView(ctx context.Context, userID string, month, year int) (domain.Availability, error)
}

func NewServer(svc schedulingService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc: svc,
		log: log.With(slog.String("component", "http.schedule")),
	}
}

// Register mounts the schedule API under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.PUT("/users/:userId/availability", s.putAvailability)
	g.GET("/users/:userId/availability", s.getAvailability)
	g.GET("/users/:userId/availability/month", s.getMonthAvailability)

	g.POST("/users/:userId/meetings", s.createMeeting)
	g.GET("/users/:userId/meetings", s.listMeetings)
	g.DELETE("/users/:userId/meetings/:meetingId", s.deleteMeeting)

	g.GET("/recurrence/label", s.getRecurrenceLabel)
}

type availabilityRequest struct {
	Slots []domain.Timeslot `json:"slots"`
}

type availabilityResponse struct {
	Slots domain.Availability `json:"slots"`
}

func (s *Server) putAvailability(c echo.Context) error {
	userID := c.Param("userId")

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "invalid request body").SetInternal(err)
	}

	slots, err := s.svc.SetWeeklyAvailability(c.Request().Context(), userID, req.Slots)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, availabilityResponse{Slots: slots})
}

func (s *Server) getAvailability(c echo.Context) error {
	slots, err := s.svc.WeeklyAvailability(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, availabilityResponse{Slots: slots})
}

func (s *Server) getMonthAvailability(c echo.Context) error {
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "month is required")
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "year is required")
	}

	slots, err := s.svc.MonthView(c.Request().Context(), c.Param("userId"), month, year)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, availabilityResponse{Slots: slots})
}

type createMeetingRequest struct {
	Subject string    `json:"subject"`
	Notes   string    `json:"notes"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

type meetingResponse struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	Subject string    `json:"subject"`
	Notes   string    `json:"notes"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

func toMeetingResponse(m domain.Meeting) meetingResponse {
	return meetingResponse{
		ID:      m.ID,
		UserID:  m.UserID,
		Subject: m.Subject,
		Notes:   m.Notes,
		From:    m.StartTime,
		To:      m.EndTime,
	}
}

func (s *Server) createMeeting(c echo.Context) error {
	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "invalid request body").SetInternal(err)
	}

	m, err := s.svc.CreateMeeting(c.Request().Context(), scheduling.CreateMeetingInput{
		UserID:         c.Param("userId"),
		Subject:        req.Subject,
		Notes:          req.Notes,
		StartTime:      req.From,
		EndTime:        req.To,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get("Idempotency-Key")),
	})
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, toMeetingResponse(m))
}

func (s *Server) listMeetings(c echo.Context) error {
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "from must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "to must be an RFC 3339 timestamp")
	}

	meetings, err := s.svc.ListMeetings(c.Request().Context(), c.Param("userId"), from, to)
	if err != nil {
		return s.mapError(c, err)
	}

	out := make([]meetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, toMeetingResponse(m))
	}
	return c.JSON(stdhttp.StatusOK, map[string]any{"meetings": out})
}

func (s *Server) deleteMeeting(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("meetingId"))
	if err != nil {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, "meeting_id must be a uuid")
	}

	if err := s.svc.DeleteMeeting(c.Request().Context(), c.Param("userId"), meetingID); err != nil {
		return s.mapError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}

type recurrenceLabelResponse struct {
	Label string `json:"label"`
}

func (s *Server) getRecurrenceLabel(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, recurrenceLabelResponse{
		Label: domain.RecurrenceLabel(c.QueryParam("rule")),
	})
}

func (s *Server) mapError(c echo.Context, err error) error {
	var vErr *scheduling.ValidationError
	if errors.As(err, &vErr) {
		return echo.NewHTTPError(stdhttp.StatusBadRequest, vErr.Error())
	}
	if errors.Is(err, store.ErrConflict) {
		return echo.NewHTTPError(stdhttp.StatusConflict, "That time is already booked. Pick a different slot.")
	}
	if errors.Is(err, store.ErrIdempotencyConflict) {
		return echo.NewHTTPError(stdhttp.StatusConflict, "This request key was already used for a different meeting. Try again.")
	}
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(stdhttp.StatusNotFound, "Not found.")
	}

	s.log.Error("request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Any("err", err),
	)
	return echo.NewHTTPError(stdhttp.StatusInternalServerError, "Something went wrong.").SetInternal(err)
}
