package models

import "time"

const (
	SessionDateLayout = "2006-01-02"
	SessionTimeLayout = "15:04"
)

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID:      FormatID(u.ID),
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

func NewStudentDetailsResponse(d *StudentDetails) StudentDetailsResponse {
	return StudentDetailsResponse{
		UserID:                 FormatID(d.UserID),
		FullName:               d.FullName,
		Age:                    d.Age,
		ContactNumber:          d.ContactNumber,
		EducationLevel:         d.EducationLevel,
		School:                 d.School,
		PreferredLearningStyle: d.PreferredLearningStyle,
		LearningDisabilities:   d.LearningDisabilities,
		DisabilityDetails:      d.DisabilityDetails,
		CreatedAt:              d.CreatedAt,
	}
}

func NewStudentSubjectResponses(subjects []StudentSubject) []StudentSubjectResponse {
	out := make([]StudentSubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, StudentSubjectResponse{
			ID:          FormatID(s.ID),
			UserID:      FormatID(s.UserID),
			SubjectName: s.SubjectName,
			CurrentYear: s.CurrentYear,
			SkillLevel:  s.SkillLevel,
		})
	}
	return out
}

func NewMentorDetailsResponse(d *MentorDetails) MentorDetailsResponse {
	return MentorDetailsResponse{
		UserID:            FormatID(d.UserID),
		FullName:          d.FullName,
		Age:               d.Age,
		ContactNumber:     d.ContactNumber,
		PreferredLanguage: d.PreferredLanguage,
		CurrentLocation:   d.CurrentLocation,
		Bio:               d.Bio,
		ProfessionalRole:  d.ProfessionalRole,
		HourlyRate:        d.HourlyRate,
		CreatedAt:         d.CreatedAt,
	}
}

func NewMentorSubjectResponses(subjects []MentorSubject) []MentorSubjectResponse {
	out := make([]MentorSubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		levels := []string(s.PreferredLevels)
		if levels == nil {
			levels = []string{}
		}
		out = append(out, MentorSubjectResponse{
			ID:                 FormatID(s.ID),
			UserID:             FormatID(s.UserID),
			SubjectName:        s.SubjectName,
			TeachingExperience: s.TeachingExperience,
			PreferredLevels:    levels,
		})
	}
	return out
}

func NewSocialLinkResponse(l *SocialLink) *SocialLinkResponse {
	if l == nil {
		return nil
	}
	return &SocialLinkResponse{
		ID:                   FormatID(l.ID),
		UserID:               FormatID(l.UserID),
		LinkedinURL:          l.LinkedinURL,
		GithubOrPortfolioURL: l.GithubOrPortfolioURL,
		ProfilePictureURL:    l.ProfilePictureURL,
	}
}

// NewMentorCard expects u to carry MentorDetails, MentorSubjects and
// SocialLink.
func NewMentorCard(u *User) MentorCard {
	card := MentorCard{
		ID:          FormatID(u.ID),
		Subjects:    NewMentorSubjectResponses(u.MentorSubjects),
		SocialLinks: NewSocialLinkResponse(u.SocialLink),
		Expertise:   make([]string, 0, len(u.MentorSubjects)),
	}
	if d := u.MentorDetails; d != nil {
		card.FullName = d.FullName
		card.ProfessionalRole = d.ProfessionalRole
		card.Bio = d.Bio
		card.PreferredLanguage = d.PreferredLanguage
		card.CurrentLocation = d.CurrentLocation
		card.HourlyRate = d.HourlyRate
	}
	for _, s := range u.MentorSubjects {
		card.Expertise = append(card.Expertise, s.SubjectName)
	}
	return card
}

func NewProfileResponse(u *User) ProfileResponse {
	resp := ProfileResponse{User: NewUserResponse(u)}
	switch u.Role {
	case RoleStudent:
		if u.StudentDetails != nil {
			d := NewStudentDetailsResponse(u.StudentDetails)
			resp.StudentDetails = &d
		}
		resp.StudentSubjects = NewStudentSubjectResponses(u.StudentSubjects)
	case RoleMentor:
		if u.MentorDetails != nil {
			d := NewMentorDetailsResponse(u.MentorDetails)
			resp.MentorDetails = &d
		}
		resp.MentorSubjects = NewMentorSubjectResponses(u.MentorSubjects)
		resp.SocialLinks = NewSocialLinkResponse(u.SocialLink)
	}
	return resp
}

// NewSessionResponse renders date and time in loc, the zone bookings are
// made in.
func NewSessionResponse(s *Session, loc *time.Location) SessionResponse {
	if loc == nil {
		loc = time.UTC
	}
	local := s.ScheduledAt.In(loc)
	resp := SessionResponse{
		ID:          FormatID(s.ID),
		StudentID:   FormatID(s.StudentID),
		MentorID:    FormatID(s.MentorID),
		Subject:     s.Subject,
		Description: s.Description,
		Date:        local.Format(SessionDateLayout),
		Time:        local.Format(SessionTimeLayout),
		ScheduledAt: s.ScheduledAt,
		Duration:    s.DurationMinutes,
		Status:      s.Status,
		Price:       float64(s.PriceCents) / 100,
		Notes:       s.Notes,
		MeetingLink: s.MeetingLink,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Student != nil {
		resp.StudentName = s.Student.DisplayName()
	}
	if s.Mentor != nil {
		resp.MentorName = s.Mentor.DisplayName()
	}
	return resp
}

func NewSessionResponses(sessions []*Session, loc *time.Location) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionResponse(s, loc))
	}
	return out
}
