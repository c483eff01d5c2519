package models

import "time"

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionApproved  SessionStatus = "approved"
	SessionRejected  SessionStatus = "rejected"
	SessionCancelled SessionStatus = "cancelled"
	SessionCompleted SessionStatus = "completed"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionPending:  {SessionApproved, SessionRejected, SessionCancelled},
	SessionApproved: {SessionCompleted, SessionCancelled},
}

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionPending, SessionApproved, SessionRejected, SessionCancelled, SessionCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BlocksSlot is true for statuses that still hold the mentor's time.
func (s SessionStatus) BlocksSlot() bool {
	return s == SessionPending || s == SessionApproved
}

// SessionDurations are the bookable lengths in minutes.
var SessionDurations = []int{30, 60, 90, 120}

// MaxSessionDuration bounds the look-back window of overlap queries.
const MaxSessionDuration = 120 * time.Minute

type Session struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	StudentID       uint          `json:"studentId" gorm:"not null;index"`
	MentorID        uint          `json:"mentorId" gorm:"not null;index:idx_sessions_mentor_schedule,priority:1"`
	Subject         string        `json:"subject" gorm:"size:255;not null"`
	Description     string        `json:"description" gorm:"size:1000;not null"`
	ScheduledAt     time.Time     `json:"scheduledAt" gorm:"not null;index:idx_sessions_mentor_schedule,priority:2"`
	DurationMinutes int           `json:"durationMinutes" gorm:"not null"`
	Status          SessionStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	PriceCents      int64         `json:"priceCents" gorm:"not null;default:0"`
	Notes           *string       `json:"notes" gorm:"size:1000"`
	MeetingLink     *string       `json:"meetingLink" gorm:"size:500"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Student *User `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Mentor  *User `json:"-" gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Overlaps reports whether [start, end) intersects this session.
func (s *Session) Overlaps(start, end time.Time) bool {
	return s.ScheduledAt.Before(end) && start.Before(s.EndsAt())
}

// PriceCentsFor returns hourlyRate * minutes / 60 in cents, rounded half up.
func PriceCentsFor(hourlyRate float64, minutes int) int64 {
	cents := hourlyRate * 100 * float64(minutes) / 60
	return int64(cents + 0.5)
}
