package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/billing"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// RecordUtility stores a meter reading, replacing any reading for the same
// room and period. It reports whether a reading was replaced.
func (s *Service) RecordUtility(ctx context.Context, u dorm.Utility) (dorm.Utility, bool, error) {
	u.RoomNo = strings.TrimSpace(u.RoomNo)
	if err := required("room number", u.RoomNo); err != nil {
		return dorm.Utility{}, false, err
	}
	if err := checkFields(field{"room number", u.RoomNo}); err != nil {
		return dorm.Utility{}, false, err
	}
	month, year, err := dorm.NormalizePeriod(u.Month, u.Year)
	if err != nil {
		return dorm.Utility{}, false, err
	}
	u.Month, u.Year = month, year
	if err := billing.ValidateReading(u); err != nil {
		return dorm.Utility{}, false, err
	}
	if u.WaterRate < 0 || u.ElectricRate < 0 {
		return dorm.Utility{}, false, fmt.Errorf("%w: rates must not be negative", dorm.ErrInvalidInput)
	}

	utilities, err := load(ctx, s.store.Utilities, "utilities")
	if err != nil {
		return dorm.Utility{}, false, err
	}
	idx := dorm.UtilityIndex(utilities)
	replaced := idx.Put(u)
	if err := save(ctx, s.store.Utilities, "utilities", idx.Values()); err != nil {
		return dorm.Utility{}, false, err
	}
	s.log.Debug("utility recorded",
		zap.String("room", u.RoomNo),
		zap.String("period", u.Month+"/"+u.Year),
		zap.Bool("replaced", replaced))
	return u, replaced, nil
}

// UtilityCharges prices the reading of a room for one period
func (s *Service) UtilityCharges(ctx context.Context, roomNo, month, year string) (billing.Charges, error) {
	month, year, err := dorm.NormalizePeriod(month, year)
	if err != nil {
		return billing.Charges{}, err
	}
	utilities, err := load(ctx, s.store.Utilities, "utilities")
	if err != nil {
		return billing.Charges{}, err
	}
	u, ok := billing.FindUtility(utilities, roomNo, month, year)
	if !ok {
		return billing.Charges{}, notFound("utility reading", roomNo+" "+month+"/"+year)
	}
	return billing.Compute(u), nil
}

// ListUtilities returns all readings in stored order
func (s *Service) ListUtilities(ctx context.Context) ([]dorm.Utility, error) {
	return load(ctx, s.store.Utilities, "utilities")
}

// CreateInvoice bills a contract for one period. Water and electricity are
// charged from the room's reading for that period, or zero without one.
func (s *Service) CreateInvoice(ctx context.Context, contractID, month, year string) (dorm.Invoice, error) {
	month, year, err := dorm.NormalizePeriod(month, year)
	if err != nil {
		return dorm.Invoice{}, err
	}

	contracts, err := load(ctx, s.store.Contracts, "contracts")
	if err != nil {
		return dorm.Invoice{}, err
	}
	c, ok := dorm.ContractIndex(contracts).Get(contractID)
	if !ok {
		return dorm.Invoice{}, notFound("contract", contractID)
	}

	utilities, err := load(ctx, s.store.Utilities, "utilities")
	if err != nil {
		return dorm.Invoice{}, err
	}
	var reading *dorm.Utility
	if u, ok := billing.FindUtility(utilities, c.RoomNo, month, year); ok {
		reading = &u
	}

	invoices, err := load(ctx, s.store.Invoices, "invoices")
	if err != nil {
		return dorm.Invoice{}, err
	}
	idx := dorm.InvoiceIndex(invoices)
	id := s.newID(dorm.InvoicePrefix)
	if idx.Has(id) {
		return dorm.Invoice{}, duplicate("invoice", id)
	}

	inv, err := billing.BuildInvoice(id, c, month, year, reading)
	if err != nil {
		return dorm.Invoice{}, err
	}
	idx.Put(inv)
	if err := save(ctx, s.store.Invoices, "invoices", idx.Values()); err != nil {
		return dorm.Invoice{}, err
	}
	s.log.Info("invoice created",
		zap.String("invoice", inv.InvoiceID),
		zap.String("contract", c.ContractID),
		zap.Float64("total", inv.Total),
		zap.Bool("utility", reading != nil))
	return inv, nil
}

// FindInvoice returns one invoice
func (s *Service) FindInvoice(ctx context.Context, id string) (dorm.Invoice, error) {
	invoices, err := load(ctx, s.store.Invoices, "invoices")
	if err != nil {
		return dorm.Invoice{}, err
	}
	inv, ok := dorm.InvoiceIndex(invoices).Get(id)
	if !ok {
		return dorm.Invoice{}, notFound("invoice", id)
	}
	return inv, nil
}

// ListInvoices returns all invoices in stored order
func (s *Service) ListInvoices(ctx context.Context) ([]dorm.Invoice, error) {
	return load(ctx, s.store.Invoices, "invoices")
}
