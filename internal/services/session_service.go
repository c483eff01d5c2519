package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

// statusEvents maps target statuses onto the event published after the
// change commits.
var statusEvents = map[models.SessionStatus]string{
	models.SessionApproved:  events.SessionApproved,
	models.SessionRejected:  events.SessionRejected,
	models.SessionCancelled: events.SessionCancelled,
	models.SessionCompleted: events.SessionCompleted,
}

type sessionService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	location       *time.Location
	now            func() time.Time
}

func NewSessionService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, location *time.Location) SessionService {
	if location == nil {
		location = time.UTC
	}
	return &sessionService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		location:       location,
		now:            time.Now,
	}
}

// ===== BOOKING =====

func (s *sessionService) Book(ctx context.Context, student *models.User, req *BookSessionRequest) (*models.SessionResponse, error) {
	if student.Role != models.RoleStudent {
		return nil, NewPermissionError(student.ID, 0, "session", "book", "only students can book sessions")
	}

	scheduledAt, errs := s.validator.GetBusinessValidator().ValidateBooking(req, s.now(), s.location)
	if len(errs) > 0 {
		return nil, errs
	}

	mentorID := models.ParseID(req.MentorID)
	s.logger.Info("Booking session", "student_id", student.ID, "mentor_id", mentorID, "scheduled_at", scheduledAt)

	var session *models.Session
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Mentor().LockForBooking(ctx, mentorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrMentorNotFound
			}
			return fmt.Errorf("failed to lock mentor: %w", err)
		}

		mentor, err := tx.Mentor().GetByID(ctx, mentorID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrMentorNotFound
			}
			return fmt.Errorf("failed to load mentor: %w", err)
		}

		end := scheduledAt.Add(time.Duration(req.Duration) * time.Minute)
		overlapping, err := tx.Session().FindOverlapping(ctx, mentor.ID, scheduledAt, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrSlotUnavailable
		}

		var rate float64
		if mentor.MentorDetails != nil {
			rate = mentor.MentorDetails.HourlyRate
		}

		created := &models.Session{
			StudentID:       student.ID,
			MentorID:        mentor.ID,
			Subject:         req.Subject,
			Description:     req.Description,
			ScheduledAt:     scheduledAt,
			DurationMinutes: req.Duration,
			Status:          models.SessionPending,
			PriceCents:      models.PriceCentsFor(rate, req.Duration),
		}
		if err := tx.Session().Create(ctx, created); err != nil {
			return err
		}

		session, err = tx.Session().GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session booked", "session_id", session.ID, "price_cents", session.PriceCents)
	s.publish(ctx, events.SessionBooked, session, student.ID)

	resp := models.NewSessionResponse(session, s.location)
	return &resp, nil
}

// ===== STATUS CHANGES =====

func (s *sessionService) Transition(ctx context.Context, actor *models.User, sessionID uint, status models.SessionStatus, req *SessionActionRequest) (*models.SessionResponse, error) {
	if req == nil {
		req = &SessionActionRequest{}
	}
	req.Notes = blankToNil(req.Notes)
	req.MeetingLink = blankToNil(req.MeetingLink)
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var session *models.Session
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		current, err := tx.Session().GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		if err := authorizeTransition(actor, current, status); err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(status) {
			return &TransitionError{From: string(current.Status), To: string(status)}
		}

		if err := tx.Session().UpdateStatus(ctx, current.ID, current.Status, status, req.Notes, req.MeetingLink); err != nil {
			return err
		}

		session, err = tx.Session().GetByID(ctx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session status changed", "session_id", session.ID, "status", status, "actor_id", actor.ID)
	s.publish(ctx, statusEvents[status], session, actor.ID)

	resp := models.NewSessionResponse(session, s.location)
	return &resp, nil
}

// authorizeTransition enforces who may drive each status change. Approve,
// reject and complete belong to the session's mentor; either participant
// may cancel.
func authorizeTransition(actor *models.User, session *models.Session, status models.SessionStatus) error {
	isMentor := actor.ID == session.MentorID
	isStudent := actor.ID == session.StudentID

	switch {
	case !isMentor && !isStudent:
		return NewPermissionError(actor.ID, session.ID, "session", string(status), "not a participant")
	case status == models.SessionCancelled:
		return nil
	case !isMentor:
		return NewPermissionError(actor.ID, session.ID, "session", string(status), "only the mentor can do this")
	}
	return nil
}

// ===== LISTS =====

func (s *sessionService) ListForStudent(ctx context.Context, student *models.User, req *SessionListRequest) (*models.SessionListResponse, error) {
	filters, err := s.listFilters(req, "")
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.Session().ListByStudent(ctx, student.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list student sessions: %w", err)
	}
	return &models.SessionListResponse{Data: models.NewSessionResponses(sessions, s.location)}, nil
}

func (s *sessionService) ListForMentor(ctx context.Context, mentor *models.User, req *SessionListRequest) (*models.SessionListResponse, error) {
	filters, err := s.listFilters(req, models.SessionPending)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.Session().ListByMentor(ctx, mentor.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor sessions: %w", err)
	}
	return &models.SessionListResponse{Data: models.NewSessionResponses(sessions, s.location)}, nil
}

func (s *sessionService) listFilters(req *SessionListRequest, fallback models.SessionStatus) (repositories.SessionFilters, error) {
	if req == nil {
		req = &SessionListRequest{}
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return repositories.SessionFilters{}, errs
	}

	status := req.Status
	if status == "" {
		status = fallback
	}

	var filters repositories.SessionFilters
	if status != "" {
		filters.Statuses = []models.SessionStatus{status}
	}
	return filters, nil
}

func (s *sessionService) publish(ctx context.Context, eventType string, session *models.Session, actorID uint) {
	event := events.NewEvent(eventType, events.SessionEventData{
		SessionID:   models.FormatID(session.ID),
		StudentID:   models.FormatID(session.StudentID),
		MentorID:    models.FormatID(session.MentorID),
		Status:      string(session.Status),
		ScheduledAt: session.ScheduledAt,
		ActorID:     models.FormatID(actorID),
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish session event", "session_id", session.ID, "event_type", eventType, "error", err)
	}
}
