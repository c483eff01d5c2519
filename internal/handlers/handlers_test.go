package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VibeFlow-2025/eduvibe-service/internal/auth"
	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/events"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/repositories/postgres"
	"github.com/VibeFlow-2025/eduvibe-service/internal/services"
	"github.com/VibeFlow-2025/eduvibe-service/internal/testutil"
	"github.com/VibeFlow-2025/eduvibe-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier accepts tokens of the form "token-<uid>".
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, raw string) (*auth.Identity, error) {
	const prefix = "token-"
	if len(raw) <= len(prefix) || raw[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}
	uid := raw[len(prefix):]
	return &auth.Identity{UID: uid, Email: uid + "@example.com", Provider: "stub"}, nil
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	redis     *miniredis.Miniredis
	publisher *events.MockEventPublisher
}

func newTestServer(t *testing.T, cfg HandlerConfig) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	publisher := events.NewMockEventPublisher(slogger)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db, RedisClient: client})

	sm := services.NewServiceManager(services.Dependencies{
		Repo:           repo,
		CacheManager:   cache.NewCacheManager(client),
		EventPublisher: publisher,
		Logger:         slogger,
	}, services.ServiceManagerConfig{
		Mentor:            services.ServiceConfig{CacheEnabled: true, CacheTTL: time.Minute},
		DefaultHourlyRate: 25,
		BookingLocation:   time.UTC,
	})
	require.NoError(t, sm.Initialize(context.Background()))

	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(sm, stubVerifier{}, repo.User(), logger, cfg).SetupRoutes(router)

	return &testServer{router: router, db: db, redis: mr, publisher: publisher}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func studentBody(uid string) map[string]interface{} {
	return map[string]interface{}{
		"firebaseUid":            uid,
		"email":                  uid + "@example.com",
		"fullName":               "Kasun Perera",
		"age":                    16,
		"contactNumber":          "0771234567",
		"educationLevel":         "O_L",
		"school":                 "Royal College",
		"preferredLearningStyle": "Visual",
		"learningDisabilities":   false,
		"subjects": []map[string]interface{}{
			{"subjectName": "Mathematics", "currentYear": 10, "skillLevel": "Intermediate"},
			{"subjectName": "Science", "currentYear": 10, "skillLevel": "Beginner"},
			{"subjectName": "English", "currentYear": 10, "skillLevel": "Advanced"},
		},
	}
}

func mentorBody(uid string) map[string]interface{} {
	return map[string]interface{}{
		"firebaseUid":       uid,
		"email":             uid + "@example.com",
		"fullName":          "Nimali Silva",
		"age":               34,
		"contactNumber":     "0712345678",
		"preferredLanguage": "English",
		"currentLocation":   "Colombo",
		"bio":               "Physics teacher",
		"professionalRole":  "Senior Lecturer",
		"hourlyRate":        40,
		"subjects": []map[string]interface{}{
			{"subjectName": "Physics", "teachingExperience": "Five_Plus_Years", "preferredLevels": []string{"A_L"}},
		},
		"linkedinUrl": "https://linkedin.com/in/" + uid,
	}
}

// bookingDate is a day that stays in the future for the life of the tests.
func bookingDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format(models.SessionDateLayout)
}

func (s *testServer) registerPair(t *testing.T) (mentorID string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/mentor/register", "", mentorBody("mentor-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	mentorID = data["user"].(map[string]interface{})["userId"].(string)

	w = s.do(t, http.MethodPost, "/api/student/register", "", studentBody("student-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return mentorID
}
