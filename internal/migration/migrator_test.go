package migration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func tableMigration(version, table string) *Migration {
	return &Migration{
		Version: version,
		Name:    "create_" + table,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + table).Error
		},
	}
}

func tableExists(t *testing.T, db *gorm.DB, name string) bool {
	t.Helper()
	var count int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count).Error
	require.NoError(t, err)
	return count == 1
}

func TestMigrator_Up(t *testing.T) {
	db := setupTestDB(t)
	migrator := NewMigrator(db, tableMigration("20240315000002", "second"), tableMigration("20240315000001", "first"))

	applied, err := migrator.Up()
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "20240315000001", applied[0].Version)

	var record MigrationRecord
	require.NoError(t, db.Where("version = ?", "20240315000001").First(&record).Error)
	assert.Equal(t, "create_first", record.Name)
	assert.True(t, tableExists(t, db, "first"))
	assert.True(t, tableExists(t, db, "second"))
	assert.True(t, tableExists(t, db, "schema_migrations"))

	again, err := migrator.Up()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMigrator_Down(t *testing.T) {
	db := setupTestDB(t)
	migrator := NewMigrator(db, tableMigration("20240315000001", "first"), tableMigration("20240315000002", "second"))

	_, err := migrator.Up()
	require.NoError(t, err)

	rolled, err := migrator.Down()
	require.NoError(t, err)
	assert.Equal(t, "20240315000002", rolled.Version)
	assert.False(t, tableExists(t, db, "second"))
	assert.True(t, tableExists(t, db, "first"))

	var record MigrationRecord
	err = db.Where("version = ?", "20240315000002").First(&record).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = migrator.Down()
	require.NoError(t, err)
	_, err = migrator.Down()
	assert.ErrorIs(t, err, ErrNothingToRollback)
}

func TestMigrator_UpFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	broken := &Migration{
		Version: "20240315000002",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE nope (").Error
		},
		Down: func(db *gorm.DB) error { return nil },
	}
	migrator := NewMigrator(db, tableMigration("20240315000001", "first"), broken)

	applied, err := migrator.Up()
	require.Error(t, err)
	assert.Len(t, applied, 1)

	pending, err := migrator.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "broken", pending[0].Name)
}

func TestMigrator_StatusAndHistory(t *testing.T) {
	db := setupTestDB(t)
	migrator := NewMigrator(db, tableMigration("20240315000001", "first"))
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	migrator.now = func() time.Time { return base }

	_, err := migrator.Up()
	require.NoError(t, err)
	migrator.Register(tableMigration("20240315000002", "second"))

	status, err := migrator.Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].Applied)
	assert.True(t, base.Equal(status[0].AppliedAt))
	assert.False(t, status[1].Applied)

	migrator.now = func() time.Time { return base.Add(time.Hour) }
	_, err = migrator.Up()
	require.NoError(t, err)

	history, err := migrator.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "20240315000002", history[0].Version)
	assert.Equal(t, "20240315000001", history[1].Version)
}
