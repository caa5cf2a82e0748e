package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/ledger"
	"github.com/beesaferoot/dorm-ledger/internal/store"
)

// MarkPaid records a payment against an unpaid invoice. Any amount is
// accepted.
func (s *Service) MarkPaid(ctx context.Context, invoiceID string, amount float64, date string) (dorm.Payment, error) {
	if err := dorm.ValidateDate(date); err != nil {
		return dorm.Payment{}, err
	}

	invoices, err := load(ctx, s.store.Invoices, "invoices")
	if err != nil {
		return dorm.Payment{}, err
	}
	payments, err := load(ctx, s.store.Payments, "payments")
	if err != nil {
		return dorm.Payment{}, err
	}

	l := ledger.New(invoices, payments)
	p, err := l.MarkPaid(invoiceID, amount, date)
	if err != nil {
		return dorm.Payment{}, err
	}

	if err := store.SaveAll(ctx,
		store.Put("invoices", s.store.Invoices, l.Invoices()),
		store.Put("payments", s.store.Payments, l.Payments()),
	); err != nil {
		return dorm.Payment{}, err
	}

	inv, _ := l.Find(invoiceID)
	if diff := amount - inv.Total; diff > 0.005 || diff < -0.005 {
		s.log.Warn("payment differs from invoice total",
			zap.String("invoice", invoiceID),
			zap.Float64("total", inv.Total),
			zap.Float64("amount", amount))
	}
	s.log.Info("invoice paid", zap.String("invoice", invoiceID), zap.Float64("amount", amount))
	return p, nil
}

// ListPayments returns all payments in the order they were recorded
func (s *Service) ListPayments(ctx context.Context) ([]dorm.Payment, error) {
	return load(ctx, s.store.Payments, "payments")
}
