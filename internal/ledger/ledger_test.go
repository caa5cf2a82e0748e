package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

func TestMarkPaidScenario(t *testing.T) {
	l := New([]dorm.Invoice{
		{InvoiceID: "I1", Total: 3650, Status: dorm.InvoiceUnpaid},
	}, nil)

	p, err := l.MarkPaid("I1", 3650, "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, dorm.Payment{InvoiceID: "I1", Amount: 3650, Date: "2024-05-10"}, p)

	inv, err := l.Find("I1")
	require.NoError(t, err)
	assert.Equal(t, dorm.InvoicePaid, inv.Status)
	assert.Len(t, l.Payments(), 1)

	_, err = l.MarkPaid("I1", 3650, "2024-05-11")
	assert.ErrorIs(t, err, dorm.ErrAlreadyPaid)
	assert.Len(t, l.Payments(), 1)
}

func TestMarkPaidAcceptsPartialAmount(t *testing.T) {
	inv := dorm.Invoice{InvoiceID: "I2", Total: 2000, Status: dorm.InvoiceUnpaid}

	p, err := MarkPaid(&inv, 500, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 500.0, p.Amount)
	assert.Equal(t, dorm.InvoicePaid, inv.Status)
}

func TestMarkPaidUnknownInvoice(t *testing.T) {
	l := New(nil, []dorm.Payment{{InvoiceID: "OLD", Amount: 1, Date: "2024-01-01"}})

	_, err := l.MarkPaid("missing", 1, "2024-01-02")
	assert.ErrorIs(t, err, dorm.ErrNotFound)
	assert.Len(t, l.Payments(), 1)

	_, err = l.Find("missing")
	assert.ErrorIs(t, err, dorm.ErrNotFound)
}

func TestLedgerKeepsInvoiceOrder(t *testing.T) {
	l := New([]dorm.Invoice{
		{InvoiceID: "I2", Status: dorm.InvoiceUnpaid},
		{InvoiceID: "I1", Status: dorm.InvoiceUnpaid},
	}, nil)

	_, err := l.MarkPaid("I1", 10, "2024-01-01")
	require.NoError(t, err)

	invs := l.Invoices()
	require.Len(t, invs, 2)
	assert.Equal(t, "I2", invs[0].InvoiceID)
	assert.Equal(t, dorm.InvoicePaid, invs[1].Status)
}
