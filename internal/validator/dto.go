package validator

import (
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

// StudentRegistrationRequest is the body of POST /api/student/register.
type StudentRegistrationRequest struct {
	FirebaseUID string `json:"firebaseUid" validate:"required,max=128"`
	Email       string `json:"email" validate:"required,email,max=255"`

	FullName               string                `json:"fullName" validate:"required,max=255"`
	Age                    int                   `json:"age" validate:"required,min=5,max=100"`
	ContactNumber          string                `json:"contactNumber" validate:"required,min=10,max=15"`
	EducationLevel         models.EducationLevel `json:"educationLevel" validate:"required,education_level"`
	School                 string                `json:"school" validate:"required,max=255"`
	PreferredLearningStyle models.LearningStyle  `json:"preferredLearningStyle" validate:"required,learning_style"`
	LearningDisabilities   *bool                 `json:"learningDisabilities" validate:"required"`
	DisabilityDetails      *string               `json:"disabilityDetails" validate:"omitempty,max=500"`

	Subjects []StudentSubjectRequest `json:"subjects" validate:"required,min=1,max=10,dive"`
}

type StudentSubjectRequest struct {
	SubjectName string            `json:"subjectName" validate:"required,max=100"`
	CurrentYear int               `json:"currentYear" validate:"required,min=1,max=13"`
	SkillLevel  models.SkillLevel `json:"skillLevel" validate:"required,skill_level"`
}

// MentorRegistrationRequest is the body of POST /api/mentor/register.
type MentorRegistrationRequest struct {
	FirebaseUID string `json:"firebaseUid" validate:"required,max=128"`
	Email       string `json:"email" validate:"required,email,max=255"`

	FullName          string                   `json:"fullName" validate:"required,max=255"`
	Age               int                      `json:"age" validate:"required,min=21,max=100"`
	ContactNumber     string                   `json:"contactNumber" validate:"required,min=10,max=15"`
	PreferredLanguage models.PreferredLanguage `json:"preferredLanguage" validate:"required,preferred_language"`
	CurrentLocation   string                   `json:"currentLocation" validate:"required,max=255"`
	Bio               *string                  `json:"bio" validate:"required,max=500"`
	ProfessionalRole  string                   `json:"professionalRole" validate:"required,max=255"`
	HourlyRate        *float64                 `json:"hourlyRate" validate:"omitempty,min=0,max=100000"`

	Subjects []MentorSubjectRequest `json:"subjects" validate:"required,min=1,dive"`

	LinkedinURL          string  `json:"linkedinUrl" validate:"required,url,max=500"`
	GithubOrPortfolioURL *string `json:"githubOrPortfolioUrl" validate:"omitempty,url,max=500"`
	ProfilePictureURL    *string `json:"profilePictureUrl" validate:"omitempty,url,max=500"`
}

type MentorSubjectRequest struct {
	SubjectName        string                    `json:"subjectName" validate:"required,max=100"`
	TeachingExperience models.TeachingExperience `json:"teachingExperience" validate:"required,teaching_experience"`
	PreferredLevels    []string                  `json:"preferredLevels" validate:"required,min=1"`
}

// BookSessionRequest is the body of POST /api/sessions. Date and Time are
// interpreted in the service's booking time zone.
type BookSessionRequest struct {
	MentorID    string `json:"mentorId" validate:"required,numeric"`
	Subject     string `json:"subject" validate:"required,not_blank,max=255"`
	Description string `json:"description" validate:"required,not_blank,max=1000"`
	Date        string `json:"date" validate:"required,calendar_date"`
	Time        string `json:"time" validate:"required,clock_time"`
	Duration    int    `json:"duration" validate:"required,session_duration"`
}

// SessionActionRequest is the optional body of the session transition
// routes.
type SessionActionRequest struct {
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
	MeetingLink *string `json:"meetingLink" validate:"omitempty,url,max=500"`
}

// MentorSearchRequest carries the query parameters of GET /api/mentors.
type MentorSearchRequest struct {
	Query   string `form:"query" json:"query" validate:"max=100"`
	Subject string `form:"subject" json:"subject" validate:"max=100"`
	Page    int    `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit   int    `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type SessionListRequest struct {
	Status models.SessionStatus `form:"status" json:"status" validate:"omitempty,session_status"`
}
