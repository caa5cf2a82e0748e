package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/auth"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// Default credentials created when no admin exists
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin"
)

// ErrInvalidCredentials is returned when a username and password do not match
var ErrInvalidCredentials = errors.New("invalid username or password")

func validateCredentials(username, password string) error {
	if err := required("username", username); err != nil {
		return err
	}
	if err := required("password", password); err != nil {
		return err
	}
	if strings.ContainsAny(username, " \t") {
		return fmt.Errorf("%w: username must not contain spaces", dorm.ErrInvalidInput)
	}
	return checkFields(field{"username", username}, field{"password", password})
}

// EnsureDefaultAdmin creates admin/admin when there are no admins at all.
// It reports whether the account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}
	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	admins = append(admins, dorm.Admin{Username: DefaultAdminUser, Password: hash})
	if err := save(ctx, s.store.Admins, "admins", admins); err != nil {
		return false, err
	}
	s.log.Warn("default admin created, change its password",
		zap.String("username", DefaultAdminUser))
	return true, nil
}

// CreateAdmin adds an admin account with a hashed password
func (s *Service) CreateAdmin(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return err
	}
	idx := dorm.AdminIndex(admins)
	if idx.Has(username) {
		return duplicate("admin", username)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	idx.Put(dorm.Admin{Username: username, Password: hash})
	if err := save(ctx, s.store.Admins, "admins", idx.Values()); err != nil {
		return err
	}
	s.log.Info("admin created", zap.String("username", username))
	return nil
}

// ChangePassword sets a new password for an admin
func (s *Service) ChangePassword(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	idx := dorm.AdminIndex(admins)
	if !idx.Update(username, func(a *dorm.Admin) { a.Password = hash }) {
		return notFound("admin", username)
	}
	return save(ctx, s.store.Admins, "admins", idx.Values())
}

// DeleteAdmin removes an admin account
func (s *Service) DeleteAdmin(ctx context.Context, username string) error {
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return err
	}
	idx := dorm.AdminIndex(admins)
	if !idx.Delete(username) {
		return notFound("admin", username)
	}
	return save(ctx, s.store.Admins, "admins", idx.Values())
}

// ListAdmins returns the admin usernames in stored order
func (s *Service) ListAdmins(ctx context.Context) ([]string, error) {
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(admins))
	for _, a := range admins {
		names = append(names, a.Username)
	}
	return names, nil
}

// VerifyAdmin checks a username and password. A plaintext password stored
// by an older version is replaced by its hash once it verifies.
func (s *Service) VerifyAdmin(ctx context.Context, username, password string) error {
	admins, err := load(ctx, s.store.Admins, "admins")
	if err != nil {
		return err
	}
	idx := dorm.AdminIndex(admins)
	a, ok := idx.Get(username)
	if !ok || !auth.CheckPassword(password, a.Password) {
		return ErrInvalidCredentials
	}
	if auth.IsHashed(a.Password) {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	idx.Update(username, func(a *dorm.Admin) { a.Password = hash })
	if err := save(ctx, s.store.Admins, "admins", idx.Values()); err != nil {
		return err
	}
	s.log.Info("upgraded plaintext admin password", zap.String("username", username))
	return nil
}
