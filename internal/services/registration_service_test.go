package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/testutil"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

func TestRegisterStudent_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := studentRequest("student-1")
	req.DisabilityDetails = strPtr("ignored because the flag is false")

	got, err := env.registration().RegisterStudent(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, got.User.UserID)
	assert.Equal(t, models.RoleStudent, got.User.Role)
	assert.Equal(t, "student-1@example.com", got.User.Email)
	assert.Equal(t, got.User.UserID, got.StudentDetails.UserID)
	assert.Nil(t, got.StudentDetails.DisabilityDetails)
	require.Len(t, got.Subjects, len(req.Subjects))
	for _, s := range got.Subjects {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, got.User.UserID, s.UserID)
	}

	assert.Equal(t, int64(1), env.count(t, &models.User{}))
	assert.Equal(t, int64(2), env.count(t, &models.StudentSubject{}))

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.UserRegistered, published[0].Type)
	assert.Equal(t, events.TopicUsers, published[0].Topic())
	data, ok := published[0].Data.(events.UserRegisteredData)
	require.True(t, ok)
	assert.Equal(t, got.User.UserID, data.UserID)
	assert.Equal(t, "student", data.Role)
}

func TestRegisterStudent_KeepsDisabilityDetails(t *testing.T) {
	env := newTestEnv(t)

	req := studentRequest("student-1")
	req.LearningDisabilities = boolPtr(true)
	req.DisabilityDetails = strPtr("Dyslexia")

	got, err := env.registration().RegisterStudent(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, got.StudentDetails.DisabilityDetails)
	assert.Equal(t, "Dyslexia", *got.StudentDetails.DisabilityDetails)
	assert.True(t, got.StudentDetails.LearningDisabilities)
}

func TestRegisterStudent_DisabilityDetailsStoredAsSent(t *testing.T) {
	tests := []struct {
		name    string
		details *string
		want    *string
	}{
		{"whitespace kept", strPtr("  "), strPtr("  ")},
		{"empty dropped", strPtr(""), nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := studentRequest("student-1")
			req.LearningDisabilities = boolPtr(true)
			req.DisabilityDetails = tt.details

			got, err := env.registration().RegisterStudent(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StudentDetails.DisabilityDetails)
		})
	}
}

func TestRegisterStudent_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registration().RegisterStudent(ctx, studentRequest("student-1"))
	require.NoError(t, err)

	t.Run("same firebase uid", func(t *testing.T) {
		req := studentRequest("student-1")
		req.Email = "other@example.com"
		_, err := env.registration().RegisterStudent(ctx, req)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("same email as a mentor", func(t *testing.T) {
		req := mentorRequest("mentor-x")
		req.Email = "student-1@example.com"
		_, err := env.registration().RegisterMentor(ctx, req)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	assert.Equal(t, int64(1), env.count(t, &models.User{}))
	assert.Len(t, env.publisher.GetPublishedEvents(), 1)
}

func TestRegister_UniqueIndexAfterPrecheck(t *testing.T) {
	env := newTestEnv(t)
	testutil.FailInsertsInto(t, env.db, "users", gorm.ErrDuplicatedKey)

	_, err := env.registration().RegisterStudent(context.Background(), studentRequest("student-1"))
	require.ErrorIs(t, err, ErrDuplicate)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)

	_, err = env.registration().RegisterMentor(context.Background(), mentorRequest("mentor-1"))
	require.ErrorIs(t, err, ErrDuplicate)

	assert.Zero(t, env.count(t, &models.User{}))
	assert.Empty(t, env.publisher.GetPublishedEvents())
}

func TestRegisterStudent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *StudentRegistrationRequest)
		field  string
	}{
		{"missing full name", func(r *StudentRegistrationRequest) { r.FullName = "" }, "fullName"},
		{"bad email", func(r *StudentRegistrationRequest) { r.Email = "not-an-email" }, "email"},
		{"too young", func(r *StudentRegistrationRequest) { r.Age = 4 }, "age"},
		{"short contact", func(r *StudentRegistrationRequest) { r.ContactNumber = "12345" }, "contactNumber"},
		{"unknown education level", func(r *StudentRegistrationRequest) { r.EducationLevel = "PhD" }, "educationLevel"},
		{"missing disability flag", func(r *StudentRegistrationRequest) { r.LearningDisabilities = nil }, "learningDisabilities"},
		{"no subjects", func(r *StudentRegistrationRequest) { r.Subjects = nil }, "subjects"},
		{"bad skill level", func(r *StudentRegistrationRequest) { r.Subjects[1].SkillLevel = "Expert" }, "subjects.1.skillLevel"},
		{"year out of range", func(r *StudentRegistrationRequest) { r.Subjects[0].CurrentYear = 14 }, "subjects.0.currentYear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := studentRequest("student-1")
			tt.mutate(req)

			_, err := env.registration().RegisterStudent(context.Background(), req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.HasField(tt.field), "expected error on %s, got %v", tt.field, verrs)

			assert.Zero(t, env.count(t, &models.User{}))
			assert.Empty(t, env.publisher.GetPublishedEvents())
		})
	}
}

func TestRegisterStudent_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	testutil.FailInsertsInto(t, env.db, "student_subjects", errors.New("disk full"))

	_, err := env.registration().RegisterStudent(context.Background(), studentRequest("student-1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)

	assert.Zero(t, env.count(t, &models.User{}))
	assert.Zero(t, env.count(t, &models.StudentDetails{}))
	assert.Empty(t, env.publisher.GetPublishedEvents())
}

func TestRegisterStudent_PublishFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.FailWith(errors.New("broker down"))

	got, err := env.registration().RegisterStudent(context.Background(), studentRequest("student-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.User.UserID)
	assert.Equal(t, int64(1), env.count(t, &models.User{}))
}

func TestRegisterMentor_Success(t *testing.T) {
	env := newTestEnv(t)

	req := mentorRequest("mentor-1")
	req.GithubOrPortfolioURL = strPtr("https://github.com/nimali")

	got, err := env.registration().RegisterMentor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.RoleMentor, got.User.Role)
	assert.Equal(t, 40.0, got.MentorDetails.HourlyRate)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, []string{"A_L"}, got.Subjects[0].PreferredLevels)
	require.NotNil(t, got.SocialLinks)
	assert.Equal(t, "https://linkedin.com/in/mentor-1", got.SocialLinks.LinkedinURL)
	require.NotNil(t, got.SocialLinks.GithubOrPortfolioURL)
	assert.Nil(t, got.SocialLinks.ProfilePictureURL)

	assert.Equal(t, int64(1), env.count(t, &models.SocialLink{}))
	require.Len(t, env.publisher.GetPublishedEvents(), 1)
}

func TestRegisterMentor_Defaults(t *testing.T) {
	env := newTestEnv(t)

	req := mentorRequest("mentor-1")
	req.HourlyRate = nil
	req.GithubOrPortfolioURL = strPtr("")
	req.ProfilePictureURL = strPtr("   ")

	got, err := env.registration().RegisterMentor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 25.0, got.MentorDetails.HourlyRate)
	assert.Equal(t, "Physics teacher", got.MentorDetails.Bio)
	assert.Nil(t, got.SocialLinks.GithubOrPortfolioURL)
	assert.Nil(t, got.SocialLinks.ProfilePictureURL)
}

func TestRegisterMentor_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *MentorRegistrationRequest)
		field  string
	}{
		{"under age", func(r *MentorRegistrationRequest) { r.Age = 20 }, "age"},
		{"bad language", func(r *MentorRegistrationRequest) { r.PreferredLanguage = "French" }, "preferredLanguage"},
		{"missing linkedin", func(r *MentorRegistrationRequest) { r.LinkedinURL = "" }, "linkedinUrl"},
		{"bad portfolio url", func(r *MentorRegistrationRequest) { r.GithubOrPortfolioURL = strPtr("nope") }, "githubOrPortfolioUrl"},
		{"negative rate", func(r *MentorRegistrationRequest) { r.HourlyRate = floatPtr(-1) }, "hourlyRate"},
		{"no levels", func(r *MentorRegistrationRequest) { r.Subjects[0].PreferredLevels = nil }, "subjects.0.preferredLevels"},
		{"blank level", func(r *MentorRegistrationRequest) { r.Subjects[0].PreferredLevels = []string{" "} }, "subjects.0.preferredLevels.0"},
		{"missing bio", func(r *MentorRegistrationRequest) { r.Bio = nil }, "bio"},
		{"long bio", func(r *MentorRegistrationRequest) { r.Bio = strPtr(strings.Repeat("a", 501)) }, "bio"},
		{"long subject name", func(r *MentorRegistrationRequest) { r.Subjects[0].SubjectName = strings.Repeat("p", 101) }, "subjects.0.subjectName"},
		{"long firebase uid", func(r *MentorRegistrationRequest) { r.FirebaseUID = strings.Repeat("u", 129) }, "firebaseUid"},
		{"long linkedin url", func(r *MentorRegistrationRequest) {
			r.LinkedinURL = "https://linkedin.com/in/" + strings.Repeat("n", 480)
		}, "linkedinUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := mentorRequest("mentor-1")
			tt.mutate(req)

			_, err := env.registration().RegisterMentor(context.Background(), req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.HasField(tt.field), "expected error on %s, got %v", tt.field, verrs)
			assert.Zero(t, env.count(t, &models.User{}))
		})
	}
}

func TestRegisterMentor_RollsBackOnSocialLinkFailure(t *testing.T) {
	env := newTestEnv(t)
	testutil.FailInsertsInto(t, env.db, "social_links", errors.New("boom"))

	_, err := env.registration().RegisterMentor(context.Background(), mentorRequest("mentor-1"))
	require.Error(t, err)

	assert.Zero(t, env.count(t, &models.User{}))
	assert.Zero(t, env.count(t, &models.MentorDetails{}))
	assert.Zero(t, env.count(t, &models.MentorSubject{}))
}

func TestRegisterMentor_InvalidatesSearchCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cache.Mentor.Set(ctx, "search:::1:10", "stale", 0))

	_, err := env.registration().RegisterMentor(ctx, mentorRequest("mentor-1"))
	require.NoError(t, err)

	assert.False(t, env.redis.Exists("mentor:search:::1:10"))
}
