package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/record"
)

// FileTable keeps one collection in a delimited text file
type FileTable[T any] struct {
	path      string
	codec     record.Codec[T]
	onCorrupt record.CorruptHandler
	log       *zap.Logger
}

// NewFileTable returns a table stored at path. With policy "skip" corrupt
// lines are logged and dropped; anything else aborts the load.
func NewFileTable[T any](path string, codec record.Codec[T], policy string, log *zap.Logger) *FileTable[T] {
	if log == nil {
		log = zap.NewNop()
	}
	t := &FileTable[T]{path: path, codec: codec, log: log, onCorrupt: record.Abort}
	if policy == config.OnCorruptSkip {
		t.onCorrupt = func(e *record.CorruptRecordError) error {
			log.Warn("skipping corrupt record",
				zap.String("file", path),
				zap.String("collection", e.Collection),
				zap.Int("line", e.Line),
				zap.String("field", e.Field),
				zap.String("value", e.Value),
				zap.Error(e.Err))
			return nil
		}
	}
	return t
}

// Path returns the backing file
func (t *FileTable[T]) Path() string { return t.path }

// Load reads the file. A missing file is an empty collection.
func (t *FileTable[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	items, err := record.Decode(f, t.codec, t.onCorrupt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.path, err)
	}
	return items, nil
}

// Save writes every item to a temporary file in the same directory and then
// renames it over the old one.
func (t *FileTable[T]) Save(ctx context.Context, items []T) error {
	f, err := t.stage(ctx, items)
	if err != nil {
		return err
	}
	return f.commit()
}

// stage writes items to a temporary file next to the table without touching
// the live file.
func (t *FileTable[T]) stage(ctx context.Context, items []T) (*stagedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	f := &stagedFile{tmp: tmp.Name(), path: t.path, collection: t.codec.Name, records: len(items), log: t.log}

	if err := record.Encode(tmp, t.codec, items); err != nil {
		tmp.Close()
		f.abort()
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		f.abort()
		return nil, fmt.Errorf("failed to sync %s: %w", f.tmp, err)
	}
	if err := tmp.Close(); err != nil {
		f.abort()
		return nil, fmt.Errorf("failed to close %s: %w", f.tmp, err)
	}
	if err := os.Chmod(f.tmp, 0644); err != nil {
		f.abort()
		return nil, fmt.Errorf("failed to set permissions on %s: %w", f.tmp, err)
	}
	return f, nil
}

// stagedFile is a fully written temporary file waiting to replace path
type stagedFile struct {
	tmp        string
	path       string
	collection string
	records    int
	log        *zap.Logger
	done       bool
}

// commit renames the temporary file over the live one
func (f *stagedFile) commit() error {
	if err := os.Rename(f.tmp, f.path); err != nil {
		f.abort()
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	f.done = true
	f.log.Debug("saved collection",
		zap.String("collection", f.collection),
		zap.String("file", f.path),
		zap.Int("records", f.records))
	return nil
}

// abort removes the temporary file unless it was already committed
func (f *stagedFile) abort() {
	if f.done {
		return
	}
	f.done = true
	_ = os.Remove(f.tmp)
}

// NewFileStore returns a store over the flat files of cfg.DataDir
func NewFileStore(cfg *config.Config, log *zap.Logger) *Store {
	p := cfg.OnCorrupt
	return &Store{
		Rooms:     NewFileTable(cfg.Path(cfg.Files.Room), record.RoomCodec, p, log),
		Tenants:   NewFileTable(cfg.Path(cfg.Files.Tenant), record.TenantCodec, p, log),
		Contracts: NewFileTable(cfg.Path(cfg.Files.Contract), record.ContractCodec, p, log),
		Utilities: NewFileTable(cfg.Path(cfg.Files.Utility), record.UtilityCodec, p, log),
		Invoices:  NewFileTable(cfg.Path(cfg.Files.Invoice), record.InvoiceCodec, p, log),
		Payments:  NewFileTable(cfg.Path(cfg.Files.Payment), record.PaymentCodec, p, log),
		Admins:    NewFileTable(cfg.Path(cfg.Files.Admin), record.AdminCodec, p, log),
	}
}

var _ Table[dorm.Room] = (*FileTable[dorm.Room])(nil)
