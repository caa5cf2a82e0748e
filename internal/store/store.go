package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// Table loads and saves one whole collection. Save replaces what was there.
type Table[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// Store bundles every dormitory collection behind one backend
type Store struct {
	Rooms     Table[dorm.Room]
	Tenants   Table[dorm.Tenant]
	Contracts Table[dorm.Contract]
	Utilities Table[dorm.Utility]
	Invoices  Table[dorm.Invoice]
	Payments  Table[dorm.Payment]
	Admins    Table[dorm.Admin]

	close func() error
}

// Close releases the backend, if it holds anything open
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Write is a pending replacement of one table's contents, applied together
// with others by SaveAll.
type Write struct {
	name    string
	save    func(ctx context.Context) error
	stage   func(ctx context.Context) (*stagedFile, error)
	db      *gorm.DB
	replace func(tx *gorm.DB) error
}

type stager[T any] interface {
	stage(ctx context.Context, items []T) (*stagedFile, error)
}

type replacer[T any] interface {
	database() *gorm.DB
	replace(tx *gorm.DB, items []T) error
}

// Put prepares the replacement of table's contents with items. name is used
// in errors.
func Put[T any](name string, table Table[T], items []T) Write {
	w := Write{
		name: name,
		save: func(ctx context.Context) error { return table.Save(ctx, items) },
	}
	if st, ok := table.(stager[T]); ok {
		w.stage = func(ctx context.Context) (*stagedFile, error) { return st.stage(ctx, items) }
	}
	if rt, ok := table.(replacer[T]); ok {
		w.db = rt.database()
		w.replace = func(tx *gorm.DB) error { return rt.replace(tx, items) }
	}
	return w
}

// SaveAll applies every write or, when one fails before the commit point,
// none of them. Flat files are first written to temporary files and only
// renamed into place once all of them and any other tables have been saved.
// Database tables are replaced in one transaction.
func SaveAll(ctx context.Context, writes ...Write) error {
	var (
		staged []*stagedFile
		sqlW   []Write
		other  []Write
	)
	abort := func() {
		for _, f := range staged {
			f.abort()
		}
	}

	for _, w := range writes {
		switch {
		case w.stage != nil:
			f, err := w.stage(ctx)
			if err != nil {
				abort()
				return fmt.Errorf("failed to save %s: %w", w.name, err)
			}
			staged = append(staged, f)
		case w.replace != nil:
			sqlW = append(sqlW, w)
		default:
			other = append(other, w)
		}
	}

	for _, w := range other {
		if err := w.save(ctx); err != nil {
			abort()
			return fmt.Errorf("failed to save %s: %w", w.name, err)
		}
	}

	if len(sqlW) > 0 {
		db := sqlW[0].db
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, w := range sqlW {
				if w.db != db {
					return fmt.Errorf("failed to save %s: table belongs to another database", w.name)
				}
				if err := w.replace(tx); err != nil {
					return fmt.Errorf("failed to save %s: %w", w.name, err)
				}
			}
			return nil
		})
		if err != nil {
			abort()
			return err
		}
	}

	for i, f := range staged {
		if err := f.commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.abort()
			}
			return err
		}
	}
	return nil
}

// Open returns the store selected by cfg.Backend. SQL backends are migrated
// to the latest schema before use.
func Open(cfg *config.Config, log *zap.Logger) (*Store, error) {
	if cfg.Backend == config.BackendFile {
		return NewFileStore(cfg, log), nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	applied, err := NewMigrator(db).Up()
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	for _, m := range applied {
		log.Info("applied migration", zap.String("version", m.Version), zap.String("name", m.Name))
	}
	return NewSQLStore(db), nil
}

// OpenDB connects to the SQL backend named by cfg.Backend
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err = gorm.Open(sqliteDialector(cfg.SQLitePath), gormConfig())
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL not set in environment or .env file")
		}
		db, err = gorm.Open(postgresDialector(cfg.DatabaseURL), gormConfig())
	default:
		return nil, fmt.Errorf("backend %q is not a database", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Backend, err)
	}
	return db, nil
}

// Collection reports how many records of one collection were copied
type Collection struct {
	Name  string
	Count int
}

// Copy loads every collection from src and saves it into dst
func Copy(ctx context.Context, src, dst *Store) ([]Collection, error) {
	var out []Collection
	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"room", func() (int, error) { return copyTable(ctx, src.Rooms, dst.Rooms) }},
		{"tenant", func() (int, error) { return copyTable(ctx, src.Tenants, dst.Tenants) }},
		{"contract", func() (int, error) { return copyTable(ctx, src.Contracts, dst.Contracts) }},
		{"utility", func() (int, error) { return copyTable(ctx, src.Utilities, dst.Utilities) }},
		{"invoice", func() (int, error) { return copyTable(ctx, src.Invoices, dst.Invoices) }},
		{"payment", func() (int, error) { return copyTable(ctx, src.Payments, dst.Payments) }},
		{"admin", func() (int, error) { return copyTable(ctx, src.Admins, dst.Admins) }},
	}
	for _, step := range steps {
		n, err := step.fn()
		if err != nil {
			return out, fmt.Errorf("failed to copy %s records: %w", step.name, err)
		}
		out = append(out, Collection{Name: step.name, Count: n})
	}
	return out, nil
}

func copyTable[T any](ctx context.Context, src, dst Table[T]) (int, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := dst.Save(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
