package models

import (
	"math"
	"time"
)

// ===== REGISTRATION RESPONSES =====

type UserResponse struct {
	UserID      string    `json:"userId"`
	FirebaseUID string    `json:"firebaseUid"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type StudentDetailsResponse struct {
	UserID                 string         `json:"userId"`
	FullName               string         `json:"fullName"`
	Age                    int            `json:"age"`
	ContactNumber          string         `json:"contactNumber"`
	EducationLevel         EducationLevel `json:"educationLevel"`
	School                 string         `json:"school"`
	PreferredLearningStyle LearningStyle  `json:"preferredLearningStyle"`
	LearningDisabilities   bool           `json:"learningDisabilities"`
	DisabilityDetails      *string        `json:"disabilityDetails"`
	CreatedAt              time.Time      `json:"createdAt"`
}

type StudentSubjectResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	SubjectName string     `json:"subjectName"`
	CurrentYear int        `json:"currentYear"`
	SkillLevel  SkillLevel `json:"skillLevel"`
}

type MentorDetailsResponse struct {
	UserID            string            `json:"userId"`
	FullName          string            `json:"fullName"`
	Age               int               `json:"age"`
	ContactNumber     string            `json:"contactNumber"`
	PreferredLanguage PreferredLanguage `json:"preferredLanguage"`
	CurrentLocation   string            `json:"currentLocation"`
	Bio               string            `json:"bio"`
	ProfessionalRole  string            `json:"professionalRole"`
	HourlyRate        float64           `json:"hourlyRate"`
	CreatedAt         time.Time         `json:"createdAt"`
}

type MentorSubjectResponse struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	SubjectName        string             `json:"subjectName"`
	TeachingExperience TeachingExperience `json:"teachingExperience"`
	PreferredLevels    []string           `json:"preferredLevels"`
}

type SocialLinkResponse struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"userId"`
	LinkedinURL          string  `json:"linkedinUrl"`
	GithubOrPortfolioURL *string `json:"githubOrPortfolioUrl"`
	ProfilePictureURL    *string `json:"profilePictureUrl"`
}

type StudentRegistration struct {
	User           UserResponse             `json:"user"`
	StudentDetails StudentDetailsResponse   `json:"studentDetails"`
	Subjects       []StudentSubjectResponse `json:"subjects"`
}

type MentorRegistration struct {
	User          UserResponse            `json:"user"`
	MentorDetails MentorDetailsResponse   `json:"mentorDetails"`
	Subjects      []MentorSubjectResponse `json:"subjects"`
	SocialLinks   *SocialLinkResponse     `json:"socialLinks"`
}

// RegistrationResponse is the 201 envelope of both registration routes.
type RegistrationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ProfileResponse backs GET /api/me. Only the fields of the caller's role
// are populated.
type ProfileResponse struct {
	User            UserResponse             `json:"user"`
	StudentDetails  *StudentDetailsResponse  `json:"studentDetails,omitempty"`
	StudentSubjects []StudentSubjectResponse `json:"studentSubjects,omitempty"`
	MentorDetails   *MentorDetailsResponse   `json:"mentorDetails,omitempty"`
	MentorSubjects  []MentorSubjectResponse  `json:"mentorSubjects,omitempty"`
	SocialLinks     *SocialLinkResponse      `json:"socialLinks,omitempty"`
}

// ===== MENTOR DISCOVERY =====

type MentorCard struct {
	ID                string                  `json:"id"`
	FullName          string                  `json:"fullName"`
	ProfessionalRole  string                  `json:"professionalRole"`
	Bio               string                  `json:"bio"`
	PreferredLanguage PreferredLanguage       `json:"preferredLanguage"`
	CurrentLocation   string                  `json:"currentLocation"`
	HourlyRate        float64                 `json:"hourlyRate"`
	Expertise         []string                `json:"expertise"`
	Subjects          []MentorSubjectResponse `json:"subjects"`
	SocialLinks       *SocialLinkResponse     `json:"socialLinks"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

type MentorListResponse struct {
	Data       []MentorCard `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// ===== SESSIONS =====

type SessionResponse struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"studentId"`
	StudentName string        `json:"studentName,omitempty"`
	MentorID    string        `json:"mentorId"`
	MentorName  string        `json:"mentorName,omitempty"`
	Subject     string        `json:"subject"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	ScheduledAt time.Time     `json:"scheduledAt"`
	Duration    int           `json:"duration"`
	Status      SessionStatus `json:"status"`
	Price       float64       `json:"price"`
	Notes       *string       `json:"notes"`
	MeetingLink *string       `json:"meetingLink"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type SessionListResponse struct {
	Data []SessionResponse `json:"data"`
}

// ===== DASHBOARDS =====

type MentorStats struct {
	TotalSessions     int64   `json:"totalSessions"`
	UpcomingSessions  int64   `json:"upcomingSessions"`
	PendingRequests   int64   `json:"pendingRequests"`
	CompletedSessions int64   `json:"completedSessions"`
	TotalEarnings     float64 `json:"totalEarnings"`
	CompletionRate    float64 `json:"completionRate"`
}

type StudentStats struct {
	TotalSessions     int64   `json:"totalSessions"`
	UpcomingSessions  int64   `json:"upcomingSessions"`
	CompletedSessions int64   `json:"completedSessions"`
	TotalSpent        float64 `json:"totalSpent"`
}
