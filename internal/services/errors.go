package services

import (
	"errors"
	"fmt"

	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

// Service errors. Repository sentinels are re-exported so handlers only
// depend on this package.
var (
	ErrUserAlreadyExists = errors.New("user with this Firebase UID or email already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrMentorNotFound    = errors.New("mentor not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSlotUnavailable   = errors.New("mentor already has a session in this time slot")
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")

	ErrNotFound         = repositories.ErrNotFound
	ErrDuplicate        = repositories.ErrDuplicate
	ErrInvalidReference = repositories.ErrInvalidReference
	ErrConflict         = repositories.ErrConflict
	ErrValueTooLong     = repositories.ErrValueTooLong
)

// PermissionError describes a denied action. It matches ErrForbidden.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrForbidden
}

// TransitionError names the rejected status change. It matches
// ErrInvalidTransition.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change session from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
