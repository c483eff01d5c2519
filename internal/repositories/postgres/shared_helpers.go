package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
)

// SharedHelpers contains common query building blocks
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// Paginate applies limit/offset; a non-positive limit leaves the query
// unbounded.
func (h *SharedHelpers) Paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// ApplySessionFilters applies status and time filters to session queries
func (h *SharedHelpers) ApplySessionFilters(query *gorm.DB, filters repositories.SessionFilters) *gorm.DB {
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.From != nil {
		query = query.Where("scheduled_at >= ?", filters.From.UTC())
	}
	return query
}

// PreloadParticipants loads both users of a session with their role details
// so responses can carry display names.
func (h *SharedHelpers) PreloadParticipants(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Student").
		Preload("Student.StudentDetails").
		Preload("Mentor").
		Preload("Mentor.MentorDetails")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
