package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/record"
	"github.com/beesaferoot/dorm-ledger/internal/store"
)

// Service runs dormitory operations against a store. Every operation loads
// the collections it needs, applies one change and saves them back. Nothing
// is saved when the change fails.
type Service struct {
	store *store.Store
	log   *zap.Logger
	newID dorm.IDGenerator
}

// Option configures a Service
type Option func(*Service)

// WithIDGenerator replaces the default random ID generator
func WithIDGenerator(gen dorm.IDGenerator) Option {
	return func(s *Service) { s.newID = gen }
}

// New creates a Service
func New(st *store.Store, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{store: st, log: log, newID: dorm.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func notFound(kind, key string) error {
	return fmt.Errorf("%s %s: %w", kind, key, dorm.ErrNotFound)
}

func duplicate(kind, key string) error {
	return fmt.Errorf("%s %s: %w", kind, key, dorm.ErrDuplicate)
}

// field is a named user supplied value
type field struct {
	name, value string
}

// checkFields rejects values that would break the line format
func checkFields(fields ...field) error {
	for _, f := range fields {
		if strings.Contains(f.value, record.Delimiter) || strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s must not contain %q or line breaks", dorm.ErrInvalidInput, f.name, record.Delimiter)
		}
	}
	return nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", dorm.ErrInvalidInput, name)
	}
	return nil
}

// load reads one collection, wrapping the error with its name
func load[T any](ctx context.Context, t store.Table[T], name string) ([]T, error) {
	items, err := t.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return items, nil
}

func save[T any](ctx context.Context, t store.Table[T], name string, items []T) error {
	if err := t.Save(ctx, items); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
