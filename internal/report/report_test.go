package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

func TestBuildMonthTotals(t *testing.T) {
	invoices := []dorm.Invoice{
		{InvoiceID: "I1", Month: "05", Year: "2024", Total: 3650},
		{InvoiceID: "I2", Month: "05", Year: "2024", Total: 2000},
	}
	payments := []dorm.Payment{
		{InvoiceID: "I1", Amount: 1000, Date: "2024-05-10"},
		{InvoiceID: "I2", Amount: 2000, Date: "2024-05-10"},
	}

	rows := Build(payments, invoices, nil)
	row, err := Find(rows, "05/2024")
	require.NoError(t, err)

	assert.Equal(t, "5650.00", row.Invoiced.StringFixed(2))
	assert.Equal(t, "3000.00", row.Received.StringFixed(2))
	assert.Nil(t, row.Utility)
	assert.Equal(t, 5, row.Month)
	assert.Equal(t, 2024, row.Year)
}

func TestBuildReceivedUsesPaymentDate(t *testing.T) {
	invoices := []dorm.Invoice{{InvoiceID: "I1", Month: "04", Year: "2024", Total: 100}}
	payments := []dorm.Payment{
		{InvoiceID: "I1", Amount: 100, Date: "2024-05-02"},
		{InvoiceID: "I1", Amount: 5, Date: "bad"},
	}

	rows := Build(payments, invoices, nil)
	require.Len(t, rows, 2)

	assert.Equal(t, "04/2024", rows[0].Key)
	assert.Equal(t, "100.00", rows[0].Invoiced.StringFixed(2))
	assert.True(t, rows[0].Received.IsZero())

	assert.Equal(t, "05/2024", rows[1].Key)
	assert.Equal(t, "100.00", rows[1].Received.StringFixed(2))
}

func TestBuildUtilityStats(t *testing.T) {
	utilities := []dorm.Utility{
		{RoomNo: "R1", Month: "05", Year: "2024", PrevWater: 100, CurrWater: 130, PrevElectric: 10, CurrElectric: 60},
		{RoomNo: "R2", Month: "05", Year: "2024", PrevWater: 0, CurrWater: 15, PrevElectric: 0, CurrElectric: 100},
	}

	rows := Build(nil, nil, utilities)
	require.Len(t, rows, 1)
	stats := rows[0].Utility
	require.NotNil(t, stats)

	assert.Equal(t, 2, stats.Rooms)
	assert.InDelta(t, 22.5, stats.AvgWater, 1e-9)
	assert.InDelta(t, 75.0, stats.AvgElectric, 1e-9)
	assert.Equal(t, 30, stats.MaxWater)
	assert.Equal(t, 100, stats.MaxElectric)
}

func TestBuildChronologicalOrder(t *testing.T) {
	invoices := []dorm.Invoice{
		{Month: "02", Year: "2025", Total: 1},
		{Month: "11", Year: "2023", Total: 1},
		{Month: "1", Year: "2024", Total: 1},
		{Month: "??", Year: "2024", Total: 1},
		{Month: "12", Year: "2023", Total: 1},
	}

	var keys []string
	for _, r := range Build(nil, invoices, nil) {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"11/2023", "12/2023", "01/2024", "02/2025", "??/2024"}, keys)
}

func TestBuildMergesUnpaddedMonths(t *testing.T) {
	invoices := []dorm.Invoice{
		{InvoiceID: "I1", Month: "5", Year: "2024", Total: 3650},
		{InvoiceID: "I2", Month: "05", Year: "2024", Total: 2000},
	}
	utilities := []dorm.Utility{
		{RoomNo: "R1", Month: "5", Year: "2024", PrevWater: 0, CurrWater: 10},
		{RoomNo: "R2", Month: "05", Year: "2024", PrevWater: 0, CurrWater: 20},
	}
	payments := []dorm.Payment{{InvoiceID: "I1", Amount: 3000, Date: "2024-05-10"}}

	rows := Build(payments, invoices, utilities)
	require.Len(t, rows, 1)
	assert.Equal(t, "05/2024", rows[0].Key)
	assert.Equal(t, "5650.00", rows[0].Invoiced.StringFixed(2))
	assert.Equal(t, "3000.00", rows[0].Received.StringFixed(2))
	require.NotNil(t, rows[0].Utility)
	assert.Equal(t, 2, rows[0].Utility.Rooms)

	row, err := Find(rows, "5/2024")
	require.NoError(t, err)
	assert.Equal(t, "05/2024", row.Key)
}

func TestWriteText(t *testing.T) {
	rows := Build(
		[]dorm.Payment{{InvoiceID: "I1", Amount: 3000, Date: "2024-05-10"}},
		[]dorm.Invoice{{Month: "05", Year: "2024", Total: 5650}},
		[]dorm.Utility{{RoomNo: "R1", Month: "06", Year: "2024", PrevWater: 1, CurrWater: 31, PrevElectric: 0, CurrElectric: 200}},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "========== Monthly Report ==========", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Month     Invoiced       Received       AvgW"))
	assert.Equal(t, strings.Repeat("-", 84), lines[2])
	assert.Equal(t, "05/2024   5650.00        3000.00        -           -           -         -         ", lines[3])
	assert.Equal(t, "06/2024   0.00           0.00           30          200         30        200       ", lines[4])
	assert.Equal(t, strings.Repeat("-", 84), lines[5])
}

func TestWriteXLSX(t *testing.T) {
	rows := Build(nil, []dorm.Invoice{{Month: "05", Year: "2024", Total: 5650}}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Invoiced", header)

	month, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "05/2024", month)

	avg, err := f.GetCellValue(sheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "-", avg)
}
