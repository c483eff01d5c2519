package pkg

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VibeFlow-2025/eduvibe-service/internal/config"
)

func TestInitDatabase_SQLite(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          filepath.Join(t.TempDir(), "app.db") + "?_pragma=foreign_keys(1)",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
	}

	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, table := range []string{"users", "student_details", "student_subjects", "mentor_details", "mentor_subjects", "social_links", "sessions"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestInitDatabase_UnknownDriver(t *testing.T) {
	_, err := InitDatabase(&config.Config{Database: config.DatabaseConfig{Driver: "mysql"}})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = NewRedisClient(&config.Config{RedisURL: "not a url"})
	assert.Error(t, err)
}
