package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories/postgres"
	"github.com/VibeFlow-2025/eduvibe-service/internal/testutil"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

var fixedNow = time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	cache     *cache.CacheManager
	redis     *miniredis.Miniredis
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		publisher: events.NewMockEventPublisher(logger),
		cache:     cache.NewCacheManager(client),
		redis:     mr,
		logger:    logger,
		validator: validator.New(),
	}
}

func (e *testEnv) registration() RegistrationService {
	return NewRegistrationService(e.repo, e.cache, e.publisher, e.logger, e.validator, 25)
}

func (e *testEnv) sessions() *sessionService {
	svc := NewSessionService(e.repo, e.publisher, e.logger, e.validator, time.UTC).(*sessionService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (e *testEnv) mentors() MentorService {
	return NewMentorService(e.repo, e.cache, time.Minute, e.logger, e.validator)
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func studentRequest(uid string) *StudentRegistrationRequest {
	return &StudentRegistrationRequest{
		FirebaseUID:            uid,
		Email:                  uid + "@example.com",
		FullName:               "Kasun Perera",
		Age:                    16,
		ContactNumber:          "0771234567",
		EducationLevel:         models.EducationOL,
		School:                 "Royal College",
		PreferredLearningStyle: models.LearningVisual,
		LearningDisabilities:   boolPtr(false),
		Subjects: []StudentSubjectRequest{
			{SubjectName: "Mathematics", CurrentYear: 10, SkillLevel: models.SkillIntermediate},
			{SubjectName: "Science", CurrentYear: 10, SkillLevel: models.SkillBeginner},
		},
	}
}

func mentorRequest(uid string) *MentorRegistrationRequest {
	return &MentorRegistrationRequest{
		FirebaseUID:       uid,
		Email:             uid + "@example.com",
		FullName:          "Nimali Silva",
		Age:               34,
		ContactNumber:     "0712345678",
		PreferredLanguage: models.LanguageEnglish,
		CurrentLocation:   "Colombo",
		Bio:               strPtr("Physics teacher"),
		ProfessionalRole:  "Senior Lecturer",
		HourlyRate:        floatPtr(40),
		Subjects: []MentorSubjectRequest{
			{SubjectName: "Physics", TeachingExperience: models.ExperienceFivePlusYears, PreferredLevels: []string{"A_L"}},
		},
		LinkedinURL: "https://linkedin.com/in/" + uid,
	}
}

// registerPair registers one mentor and one student and returns their
// user rows.
func (e *testEnv) registerPair(t *testing.T) (mentor, student *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := e.registration().RegisterMentor(ctx, mentorRequest("mentor-1"))
	require.NoError(t, err)
	_, err = e.registration().RegisterStudent(ctx, studentRequest("student-1"))
	require.NoError(t, err)

	mentor, err = e.repo.User().GetByFirebaseUID(ctx, "mentor-1")
	require.NoError(t, err)
	student, err = e.repo.User().GetByFirebaseUID(ctx, "student-1")
	require.NoError(t, err)

	e.publisher.ClearEvents()
	return mentor, student
}
