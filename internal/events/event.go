package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "eduvibe-service"
	EventVersion = "1.0"
)

// Event types
const (
	UserRegistered   = "user.registered"
	SessionBooked    = "session.booked"
	SessionApproved  = "session.approved"
	SessionRejected  = "session.rejected"
	SessionCancelled = "session.cancelled"
	SessionCompleted = "session.completed"
)

// Topics
const (
	TopicUsers    = "users"
	TopicSessions = "sessions"
)

// Event is the envelope every published message carries
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Topic maps an event type onto its family topic: "session.booked" goes to
// "sessions".
func (e *Event) Topic() string {
	family, _, _ := strings.Cut(e.Type, ".")
	return family + "s"
}

// UserRegisteredData is published once per successful registration
type UserRegisteredData struct {
	UserID      string `json:"userId"`
	FirebaseUID string `json:"firebaseUid"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// SessionEventData is published on booking and on every status change
type SessionEventData struct {
	SessionID   string    `json:"sessionId"`
	StudentID   string    `json:"studentId"`
	MentorID    string    `json:"mentorId"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	ActorID     string    `json:"actorId"`
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
