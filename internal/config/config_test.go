package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, key := range []string{
		"DORM_DATA_DIR", "DORM_BACKEND", "DORM_SQLITE_PATH", "DATABASE_URL",
		"DORM_REPORT_FILE", "DORM_ON_CORRUPT", "DORM_DEFAULT_ADMIN",
		"LOG_LEVEL", "LOG_FORMAT", "STUDENT_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "dorm.db", cfg.SQLitePath)
	assert.Equal(t, "report.txt", cfg.ReportFile)
	assert.Equal(t, OnCorruptAbort, cfg.OnCorrupt)
	assert.True(t, cfg.DefaultAdmin)
	assert.Equal(t, "student.dat", cfg.StudentFile)
	assert.Equal(t, "Room.dat", cfg.Files.Room)
	assert.Equal(t, "Admin.dat", cfg.Files.Admin)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("DORM_DATA_DIR", "/var/lib/dorm")
	t.Setenv("DORM_BACKEND", "sqlite")
	t.Setenv("DORM_SQLITE_PATH", "")
	t.Setenv("DORM_ON_CORRUPT", "skip")
	t.Setenv("DORM_DEFAULT_ADMIN", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/var/lib/dorm", "dorm.db"), cfg.SQLitePath)
	assert.Equal(t, OnCorruptSkip, cfg.OnCorrupt)
	assert.False(t, cfg.DefaultAdmin)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/dorm/Room.dat", cfg.Path(cfg.Files.Room))
	assert.Equal(t, "/tmp/report.txt", cfg.Path("/tmp/report.txt"))
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		t.Setenv("DORM_BACKEND", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("DORM_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})
	t.Run("corrupt policy", func(t *testing.T) {
		t.Setenv("DORM_BACKEND", "")
		t.Setenv("DORM_ON_CORRUPT", "ignore")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("default admin flag", func(t *testing.T) {
		t.Setenv("DORM_DEFAULT_ADMIN", "maybe")
		_, err := Load()
		assert.Error(t, err)
	})
}
