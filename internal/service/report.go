package service

import (
	"context"

	"github.com/beesaferoot/dorm-ledger/internal/report"
)

// MonthlyReport aggregates payments, invoices and utility readings per month
func (s *Service) MonthlyReport(ctx context.Context) ([]report.MonthRow, error) {
	payments, err := load(ctx, s.store.Payments, "payments")
	if err != nil {
		return nil, err
	}
	invoices, err := load(ctx, s.store.Invoices, "invoices")
	if err != nil {
		return nil, err
	}
	utilities, err := load(ctx, s.store.Utilities, "utilities")
	if err != nil {
		return nil, err
	}
	return report.Build(payments, invoices, utilities), nil
}
