package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

func TestComputeWaterBill(t *testing.T) {
	u := dorm.Utility{RoomNo: "R1", Month: "05", Year: "2024", PrevWater: 100, CurrWater: 130, WaterRate: 5.0}

	water, electric := ComputeUnits(u)
	assert.Equal(t, 30, water)
	assert.Equal(t, 0, electric)

	charges := Compute(u)
	assert.Equal(t, 150.0, charges.WaterBill)
	assert.Equal(t, 0.0, charges.ElectricBill)
}

func TestComputeFractionalRate(t *testing.T) {
	u := dorm.Utility{PrevElectric: 1000, CurrElectric: 1003, ElectricRate: 0.1}
	assert.Equal(t, 0.3, Compute(u).ElectricBill)
}

func TestBuildInvoice(t *testing.T) {
	c := dorm.Contract{ContractID: "C1", TenantID: "T1", RoomNo: "R1", RoomPrice: 3000, InternetFee: 300}
	u := dorm.Utility{
		RoomNo: "R1", Month: "05", Year: "2024",
		PrevWater: 100, CurrWater: 130, WaterRate: 5.0,
		PrevElectric: 500, CurrElectric: 550, ElectricRate: 4.0,
	}

	inv, err := BuildInvoice("I1", c, "05", "2024", &u)
	require.NoError(t, err)

	assert.Equal(t, "I1", inv.InvoiceID)
	assert.Equal(t, "C1", inv.ContractID)
	assert.Equal(t, "R1", inv.RoomNo)
	assert.Equal(t, 150.0, inv.WaterBill)
	assert.Equal(t, 200.0, inv.ElectricBill)
	assert.Equal(t, 3650.0, inv.Total)
	assert.Equal(t, dorm.InvoiceUnpaid, inv.Status)
}

func TestBuildInvoiceWithoutUtility(t *testing.T) {
	c := dorm.Contract{ContractID: "C1", RoomNo: "R1", RoomPrice: 2500.5, InternetFee: 199.5}

	inv, err := BuildInvoice("I2", c, "06", "2024", nil)
	require.NoError(t, err)
	assert.Zero(t, inv.WaterBill)
	assert.Zero(t, inv.ElectricBill)
	assert.Equal(t, 2700.0, inv.Total)
}

func TestBuildInvoiceRejectsRollback(t *testing.T) {
	c := dorm.Contract{ContractID: "C1", RoomNo: "R1"}
	u := dorm.Utility{RoomNo: "R1", PrevWater: 900, CurrWater: 10}

	_, err := BuildInvoice("I3", c, "05", "2024", &u)
	assert.ErrorIs(t, err, ErrMeterRollback)
}

func TestValidateReading(t *testing.T) {
	assert.NoError(t, ValidateReading(dorm.Utility{PrevWater: 1, CurrWater: 1, PrevElectric: 2, CurrElectric: 3}))
	assert.ErrorIs(t, ValidateReading(dorm.Utility{PrevElectric: 5, CurrElectric: 4}), ErrMeterRollback)
}

func TestFindUtilityFirstMatch(t *testing.T) {
	utils := []dorm.Utility{
		{RoomNo: "R1", Month: "04", Year: "2024", CurrWater: 1},
		{RoomNo: "R1", Month: "05", Year: "2024", CurrWater: 2},
		{RoomNo: "R1", Month: "05", Year: "2024", CurrWater: 3},
	}

	u, ok := FindUtility(utils, "R1", "05", "2024")
	require.True(t, ok)
	assert.Equal(t, 2, u.CurrWater)

	_, ok = FindUtility(utils, "R2", "05", "2024")
	assert.False(t, ok)
}
