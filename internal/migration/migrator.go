package migration

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// ErrNothingToRollback is returned by Down when no migration has been applied
var ErrNothingToRollback = errors.New("no applied migrations to roll back")

// Migration represents a single schema change
type Migration struct {
	Version string // sortable identifier, e.g. 20240101000000
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord represents a record of an applied migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

// Status pairs a known migration with its applied record, if any
type Status struct {
	Migration *Migration
	Applied   bool
	AppliedAt time.Time
}

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
	now        func() time.Time
}

// NewMigrator creates a Migrator for the given migrations, ordered by version
func NewMigrator(db *gorm.DB, migrations ...*Migration) *Migrator {
	m := &Migrator{db: db, now: time.Now}
	for _, mg := range migrations {
		m.Register(mg)
	}
	return m
}

// Register adds a migration, keeping the list ordered by version
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// ensureVersionTable creates the version tracking table if it doesn't exist
func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns a map of applied migration versions
func (m *Migrator) GetAppliedVersions() (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Up applies all pending migrations, each in its own transaction, and
// returns the ones it applied.
func (m *Migrator) Up() ([]*Migration, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	var done []*Migration
	for _, mg := range m.migrations {
		if _, ok := applied[mg.Version]; ok {
			continue
		}

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mg.Name, err)
			}
			record := MigrationRecord{
				Version:   mg.Version,
				Name:      mg.Name,
				AppliedAt: m.now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mg.Name, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}
		done = append(done, mg)
	}
	return done, nil
}

// Pending lists migrations that have not been applied yet
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}
	var pending []*Migration
	for _, mg := range m.migrations {
		if _, ok := applied[mg.Version]; !ok {
			pending = append(pending, mg)
		}
	}
	return pending, nil
}

// Down rolls back the most recently applied migration and returns it
func (m *Migrator) Down() (*Migration, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var lastRecord MigrationRecord
	err := m.db.Order("applied_at DESC").Order("version DESC").First(&lastRecord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNothingToRollback
	}
	if err != nil {
		return nil, err
	}

	var target *Migration
	for _, mg := range m.migrations {
		if mg.Version == lastRecord.Version {
			target = mg
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("applied migration %s (%s) is unknown", lastRecord.Name, lastRecord.Version)
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to roll back migration %s: %w", target.Name, err)
		}
		return tx.Delete(&lastRecord).Error
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// Status reports every known migration and whether it has been applied
func (m *Migrator) Status() ([]Status, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mg := range m.migrations {
		rec, ok := applied[mg.Version]
		out = append(out, Status{Migration: mg, Applied: ok, AppliedAt: rec.AppliedAt})
	}
	return out, nil
}

// History returns applied records, most recent first
func (m *Migrator) History() ([]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}
	var records []MigrationRecord
	if err := m.db.Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %w", err)
	}
	return records, nil
}
