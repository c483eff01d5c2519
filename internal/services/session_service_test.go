package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

func bookingRequest(mentor *models.User, date, clock string, duration int) *BookSessionRequest {
	return &BookSessionRequest{
		MentorID:    models.FormatID(mentor.ID),
		Subject:     "Physics",
		Description: "Projectile motion revision",
		Date:        date,
		Time:        clock,
		Duration:    duration,
	}
}

func TestBook_Success(t *testing.T) {
	env := newTestEnv(t)
	mentor, student := env.registerPair(t)

	got, err := env.sessions().Book(context.Background(), student, bookingRequest(mentor, "2030-03-02", "14:00", 90))
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.SessionPending, got.Status)
	assert.Equal(t, "2030-03-02", got.Date)
	assert.Equal(t, "14:00", got.Time)
	assert.Equal(t, 90, got.Duration)
	assert.Equal(t, 60.0, got.Price)
	assert.Equal(t, "Nimali Silva", got.MentorName)
	assert.Equal(t, "Kasun Perera", got.StudentName)

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.SessionBooked, published[0].Type)
	assert.Equal(t, events.TopicSessions, published[0].Topic())
}

func TestBook_InterpretsTimeInBookingZone(t *testing.T) {
	env := newTestEnv(t)
	mentor, student := env.registerPair(t)

	colombo := time.FixedZone("Asia/Colombo", 5*3600+1800)
	svc := NewSessionService(env.repo, env.publisher, env.logger, env.validator, colombo).(*sessionService)
	svc.now = func() time.Time { return fixedNow }

	got, err := svc.Book(context.Background(), student, bookingRequest(mentor, "2030-03-02", "09:30", 60))
	require.NoError(t, err)

	want := time.Date(2030, 3, 2, 4, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(got.ScheduledAt), "scheduled at %s", got.ScheduledAt)
	assert.Equal(t, "09:30", got.Time)
}

func TestBook_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor, student := env.registerPair(t)
	svc := env.sessions()

	_, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "14:00", 60))
	require.NoError(t, err)

	t.Run("overlapping slot", func(t *testing.T) {
		_, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "14:30", 30))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("slot covering an existing booking", func(t *testing.T) {
		_, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "13:00", 120))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("back to back is fine", func(t *testing.T) {
		_, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "15:00", 30))
		assert.NoError(t, err)
	})

	t.Run("student as mentor", func(t *testing.T) {
		_, err := svc.Book(ctx, student, bookingRequest(student, "2030-03-03", "10:00", 60))
		assert.ErrorIs(t, err, ErrMentorNotFound)
	})

	t.Run("unknown mentor", func(t *testing.T) {
		req := bookingRequest(mentor, "2030-03-03", "10:00", 60)
		req.MentorID = "999"
		_, err := svc.Book(ctx, student, req)
		assert.ErrorIs(t, err, ErrMentorNotFound)
	})

	t.Run("mentor cannot book", func(t *testing.T) {
		_, err := svc.Book(ctx, mentor, bookingRequest(mentor, "2030-03-03", "10:00", 60))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	validation := []struct {
		name  string
		req   *BookSessionRequest
		field string
	}{
		{"past date", bookingRequest(mentor, "2030-02-28", "10:00", 60), "date"},
		{"earlier today", bookingRequest(mentor, "2030-03-01", "07:59", 60), "time"},
		{"impossible date", bookingRequest(mentor, "2030-02-30", "10:00", 60), "date"},
		{"bad clock", bookingRequest(mentor, "2030-03-03", "25:00", 60), "time"},
		{"odd duration", bookingRequest(mentor, "2030-03-03", "10:00", 45), "duration"},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(ctx, student, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.HasField(tt.field), "expected error on %s, got %v", tt.field, verrs)
		})
	}
}

func TestBook_CancelledSessionFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor, student := env.registerPair(t)
	svc := env.sessions()

	booked, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "14:00", 60))
	require.NoError(t, err)

	_, err = svc.Transition(ctx, student, models.ParseID(booked.ID), models.SessionCancelled, nil)
	require.NoError(t, err)

	_, err = svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "14:00", 60))
	assert.NoError(t, err)
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor, student := env.registerPair(t)
	svc := env.sessions()

	const attempts = 5
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "14:00", 60))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var booked int
	for err := range errs {
		if err == nil {
			booked++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, int64(1), env.count(t, &models.Session{}))
}

func TestTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor, student := env.registerPair(t)
	svc := env.sessions()

	_, err := env.registration().RegisterStudent(ctx, studentRequest("outsider"))
	require.NoError(t, err)
	outsider, err := env.repo.User().GetByFirebaseUID(ctx, "outsider")
	require.NoError(t, err)

	book := func(t *testing.T, clock string) uint {
		t.Helper()
		resp, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-05", clock, 30))
		require.NoError(t, err)
		return models.ParseID(resp.ID)
	}

	t.Run("mentor approves then completes", func(t *testing.T) {
		id := book(t, "09:00")
		env.publisher.ClearEvents()

		link := "https://meet.example.com/abc"
		got, err := svc.Transition(ctx, mentor, id, models.SessionApproved, &SessionActionRequest{MeetingLink: &link, Notes: strPtr("Bring notes")})
		require.NoError(t, err)
		assert.Equal(t, models.SessionApproved, got.Status)
		require.NotNil(t, got.MeetingLink)
		assert.Equal(t, link, *got.MeetingLink)

		got, err = svc.Transition(ctx, mentor, id, models.SessionCompleted, nil)
		require.NoError(t, err)
		assert.Equal(t, models.SessionCompleted, got.Status)
		require.NotNil(t, got.MeetingLink, "completion leaves the meeting link alone")

		published := env.publisher.GetPublishedEvents()
		require.Len(t, published, 2)
		assert.Equal(t, events.SessionApproved, published[0].Type)
		assert.Equal(t, events.SessionCompleted, published[1].Type)
	})

	t.Run("completed session cannot be approved", func(t *testing.T) {
		id := book(t, "10:00")
		_, err := svc.Transition(ctx, mentor, id, models.SessionApproved, nil)
		require.NoError(t, err)
		_, err = svc.Transition(ctx, mentor, id, models.SessionCompleted, nil)
		require.NoError(t, err)

		_, err = svc.Transition(ctx, mentor, id, models.SessionApproved, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		var te *TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "completed", te.From)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		id := book(t, "11:00")
		_, err := svc.Transition(ctx, mentor, id, models.SessionCompleted, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("student cannot approve", func(t *testing.T) {
		id := book(t, "12:00")
		_, err := svc.Transition(ctx, student, id, models.SessionApproved, nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("outsider cannot cancel", func(t *testing.T) {
		id := book(t, "13:00")
		_, err := svc.Transition(ctx, outsider, id, models.SessionCancelled, nil)
		assert.ErrorIs(t, err, ErrForbidden)
		var pe *PermissionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, outsider.ID, pe.UserID)
	})

	t.Run("mentor rejects with notes", func(t *testing.T) {
		id := book(t, "14:00")
		got, err := svc.Transition(ctx, mentor, id, models.SessionRejected, &SessionActionRequest{Notes: strPtr("Fully booked that week")})
		require.NoError(t, err)
		assert.Equal(t, models.SessionRejected, got.Status)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "Fully booked that week", *got.Notes)
	})

	t.Run("bad meeting link", func(t *testing.T) {
		id := book(t, "15:00")
		_, err := svc.Transition(ctx, mentor, id, models.SessionApproved, &SessionActionRequest{MeetingLink: strPtr("not a url")})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.HasField("meetingLink"))
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Transition(ctx, mentor, 9999, models.SessionApproved, nil)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestListSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mentor, student := env.registerPair(t)
	svc := env.sessions()

	first, err := svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "09:00", 60))
	require.NoError(t, err)
	_, err = svc.Book(ctx, student, bookingRequest(mentor, "2030-03-02", "11:00", 60))
	require.NoError(t, err)
	_, err = svc.Transition(ctx, mentor, models.ParseID(first.ID), models.SessionApproved, nil)
	require.NoError(t, err)

	all, err := svc.ListForStudent(ctx, student, nil)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)

	approved, err := svc.ListForStudent(ctx, student, &SessionListRequest{Status: models.SessionApproved})
	require.NoError(t, err)
	require.Len(t, approved.Data, 1)
	assert.Equal(t, first.ID, approved.Data[0].ID)

	pending, err := svc.ListForMentor(ctx, mentor, nil)
	require.NoError(t, err)
	require.Len(t, pending.Data, 1)
	assert.Equal(t, models.SessionPending, pending.Data[0].Status)

	_, err = svc.ListForMentor(ctx, mentor, &SessionListRequest{Status: "archived"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
