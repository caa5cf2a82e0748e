package ledger

import (
	"fmt"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// Ledger tracks invoices and the payments recorded against them
type Ledger struct {
	invoices *dorm.Index[string, dorm.Invoice]
	payments []dorm.Payment
}

// New creates a ledger over loaded invoices and payments
func New(invoices []dorm.Invoice, payments []dorm.Payment) *Ledger {
	return &Ledger{
		invoices: dorm.InvoiceIndex(invoices),
		payments: append([]dorm.Payment(nil), payments...),
	}
}

// MarkPaid flips an unpaid invoice to PAID and appends a payment. The amount
// is recorded as given, partial and excess payments included.
func MarkPaid(inv *dorm.Invoice, amount float64, date string) (dorm.Payment, error) {
	if inv.Status == dorm.InvoicePaid {
		return dorm.Payment{}, fmt.Errorf("invoice %s: %w", inv.InvoiceID, dorm.ErrAlreadyPaid)
	}
	inv.Status = dorm.InvoicePaid
	return dorm.Payment{InvoiceID: inv.InvoiceID, Amount: amount, Date: date}, nil
}

// Find returns the invoice with the given id
func (l *Ledger) Find(invoiceID string) (dorm.Invoice, error) {
	inv, ok := l.invoices.Get(invoiceID)
	if !ok {
		return dorm.Invoice{}, fmt.Errorf("invoice %s: %w", invoiceID, dorm.ErrNotFound)
	}
	return inv, nil
}

// MarkPaid records a payment for the invoice with the given id
func (l *Ledger) MarkPaid(invoiceID string, amount float64, date string) (dorm.Payment, error) {
	var (
		payment dorm.Payment
		err     error
	)
	found := l.invoices.Update(invoiceID, func(inv *dorm.Invoice) {
		payment, err = MarkPaid(inv, amount, date)
	})
	if !found {
		return dorm.Payment{}, fmt.Errorf("invoice %s: %w", invoiceID, dorm.ErrNotFound)
	}
	if err != nil {
		return dorm.Payment{}, err
	}
	l.payments = append(l.payments, payment)
	return payment, nil
}

// Invoices returns all invoices in load order
func (l *Ledger) Invoices() []dorm.Invoice {
	return l.invoices.Values()
}

// Payments returns all payments in the order they were recorded
func (l *Ledger) Payments() []dorm.Payment {
	return append([]dorm.Payment(nil), l.payments...)
}
