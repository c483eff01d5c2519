package services

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VibeFlow-2025/eduvibe-service/internal/cache"
	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
	"github.com/VibeFlow-2025/eduvibe-service/internal/validator"
)

func registerMentors(t *testing.T, env *testEnv, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		req := mentorRequest("mentor-" + strconv.Itoa(i))
		if i%2 == 1 {
			req.Subjects[0].SubjectName = "Chemistry"
			req.FullName = "Ruwan Jayasuriya"
		}
		_, err := env.registration().RegisterMentor(context.Background(), req)
		require.NoError(t, err)
	}
}

func TestMentorSearch(t *testing.T) {
	env := newTestEnv(t)
	registerMentors(t, env, 5)
	svc := env.mentors()
	ctx := context.Background()

	got, err := svc.Search(ctx, &MentorSearchRequest{})
	require.NoError(t, err)
	assert.Len(t, got.Data, 5)
	assert.Equal(t, int64(5), got.Pagination.Total)
	assert.Equal(t, 1, got.Pagination.Page)

	got, err = svc.Search(ctx, &MentorSearchRequest{Subject: "Chemistry"})
	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	for _, card := range got.Data {
		assert.Equal(t, []string{"Chemistry"}, card.Expertise)
		assert.Equal(t, "Ruwan Jayasuriya", card.FullName)
	}

	got, err = svc.Search(ctx, &MentorSearchRequest{Query: "nimali", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, int64(3), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)

	_, err = svc.Search(ctx, &MentorSearchRequest{Limit: 500})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasField("limit"))
}

func TestMentorSearch_ServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	registerMentors(t, env, 2)
	svc := env.mentors()
	ctx := context.Background()

	first, err := svc.Search(ctx, &MentorSearchRequest{Query: "Nimali"})
	require.NoError(t, err)
	require.Len(t, first.Data, 1)

	key := env.cache.Mentor.GetCacheKey(cache.MentorSearchKey("Nimali", "", 1, 10))
	assert.Eventually(t, func() bool { return env.redis.Exists(key) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, env.db.Exec("DELETE FROM mentor_subjects").Error)

	second, err := svc.Search(ctx, &MentorSearchRequest{Query: "nimali "})
	require.NoError(t, err)
	assert.Equal(t, first.Data[0].ID, second.Data[0].ID)
	assert.Equal(t, first.Data[0].Expertise, second.Data[0].Expertise)
}

func TestMentorGetByID(t *testing.T) {
	env := newTestEnv(t)
	mentor, student := env.registerPair(t)
	svc := env.mentors()
	ctx := context.Background()

	card, err := svc.GetByID(ctx, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FormatID(mentor.ID), card.ID)
	assert.Equal(t, "Senior Lecturer", card.ProfessionalRole)
	assert.Equal(t, []string{"Physics"}, card.Expertise)
	require.NotNil(t, card.SocialLinks)

	key := env.cache.Mentor.GetCacheKey(cache.MentorCardKey(mentor.ID))
	require.Eventually(t, func() bool { return env.redis.Exists(key) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, env.db.Exec("UPDATE mentor_details SET professional_role = ? WHERE user_id = ?", "Changed", mentor.ID).Error)
	cached, err := svc.GetByID(ctx, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Lecturer", cached.ProfessionalRole)

	env.redis.FastForward(2 * time.Minute)
	fresh, err := svc.GetByID(ctx, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", fresh.ProfessionalRole)

	_, err = svc.GetByID(ctx, student.ID)
	assert.ErrorIs(t, err, ErrMentorNotFound)

	_, err = svc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestMentorGetByID_WithoutRedis(t *testing.T) {
	env := newTestEnv(t)
	mentor, _ := env.registerPair(t)

	svc := NewMentorService(env.repo, cache.NewCacheManager(nil), time.Minute, env.logger, env.validator)

	card, err := svc.GetByID(context.Background(), mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nimali Silva", card.FullName)
}

func TestMentorExport(t *testing.T) {
	env := newTestEnv(t)
	registerMentors(t, env, 3)
	svc := env.mentors()

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &MentorSearchRequest{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Full Name", rows[0][1])
	assert.Equal(t, "Nimali Silva", rows[1][1])
	assert.Equal(t, "Physics", rows[1][6])
	assert.Equal(t, "https://linkedin.com/in/mentor-0", rows[1][7])

	buf.Reset()
	require.NoError(t, svc.Export(context.Background(), &MentorSearchRequest{Subject: "Chemistry"}, &buf))
	f2, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f2.Close()

	rows, err = f2.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
