package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// ErrMeterRollback is returned when a current meter value is below the
// previous one.
var ErrMeterRollback = errors.New("current meter reading is below previous reading")

// Charges holds the consumption and billed amounts of one utility reading
type Charges struct {
	WaterUnits    int
	ElectricUnits int
	WaterBill     float64
	ElectricBill  float64
}

// ComputeUnits returns the water and electric consumption of a reading
func ComputeUnits(u dorm.Utility) (water, electric int) {
	return u.CurrWater - u.PrevWater, u.CurrElectric - u.PrevElectric
}

// ValidateReading rejects readings with negative consumption
func ValidateReading(u dorm.Utility) error {
	water, electric := ComputeUnits(u)
	if water < 0 {
		return fmt.Errorf("%w: room %s %s/%s water %d -> %d", ErrMeterRollback, u.RoomNo, u.Month, u.Year, u.PrevWater, u.CurrWater)
	}
	if electric < 0 {
		return fmt.Errorf("%w: room %s %s/%s electric %d -> %d", ErrMeterRollback, u.RoomNo, u.Month, u.Year, u.PrevElectric, u.CurrElectric)
	}
	return nil
}

// Compute prices a reading at its own rates
func Compute(u dorm.Utility) Charges {
	water, electric := ComputeUnits(u)
	return Charges{
		WaterUnits:    water,
		ElectricUnits: electric,
		WaterBill:     multiply(water, u.WaterRate),
		ElectricBill:  multiply(electric, u.ElectricRate),
	}
}

func multiply(units int, rate float64) float64 {
	f, _ := decimal.NewFromInt(int64(units)).Mul(decimal.NewFromFloat(rate)).Float64()
	return f
}

// FindUtility returns the first reading for the room and period
func FindUtility(utilities []dorm.Utility, roomNo, month, year string) (dorm.Utility, bool) {
	for _, u := range utilities {
		if u.RoomNo == roomNo && u.Month == month && u.Year == year {
			return u, true
		}
	}
	return dorm.Utility{}, false
}

// BuildInvoice creates an unpaid invoice for the contract and period. The
// utility reading is optional; without one the water and electric bills are
// zero. The total is fixed at creation.
func BuildInvoice(id string, c dorm.Contract, month, year string, u *dorm.Utility) (dorm.Invoice, error) {
	inv := dorm.Invoice{
		InvoiceID:   id,
		ContractID:  c.ContractID,
		RoomNo:      c.RoomNo,
		Month:       month,
		Year:        year,
		RoomPrice:   c.RoomPrice,
		InternetFee: c.InternetFee,
		Status:      dorm.InvoiceUnpaid,
	}

	if u != nil {
		if err := ValidateReading(*u); err != nil {
			return dorm.Invoice{}, err
		}
		charges := Compute(*u)
		inv.WaterBill = charges.WaterBill
		inv.ElectricBill = charges.ElectricBill
	}

	total := decimal.NewFromFloat(inv.RoomPrice).
		Add(decimal.NewFromFloat(inv.InternetFee)).
		Add(decimal.NewFromFloat(inv.WaterBill)).
		Add(decimal.NewFromFloat(inv.ElectricBill))
	inv.Total, _ = total.Float64()

	return inv, nil
}
