package dorm

import (
	"fmt"
	"strings"
)

// RoomStatus is the occupancy state of a room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

// ParseRoomStatus accepts a status name in any letter case
func ParseRoomStatus(s string) (RoomStatus, error) {
	for _, st := range []RoomStatus{RoomAvailable, RoomOccupied, RoomMaintenance} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: room status %q (want Available, Occupied or Maintenance)", ErrInvalidInput, s)
}

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "UNPAID"
	InvoicePaid   InvoiceStatus = "PAID"
)

// Room represents a rentable room in the dormitory
type Room struct {
	RoomNo string
	Type   string // Single/Double/Suite
	Status RoomStatus
}

// Tenant represents a person renting a room
type Tenant struct {
	TenantID  string
	Name      string
	Phone     string
	CitizenID string
	BirthDate string // YYYY-MM-DD
	Address   string
	RoomNo    string // empty when the tenant holds no contract
}

// Contract binds one tenant to one room for a date range with fixed fees
type Contract struct {
	ContractID  string
	TenantID    string
	RoomNo      string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	RoomPrice   float64
	InternetFee float64
}

// Utility is a meter snapshot for one room and month
type Utility struct {
	RoomNo       string
	Month        string // MM
	Year         string // YYYY
	PrevWater    int
	CurrWater    int
	PrevElectric int
	CurrElectric int
	WaterRate    float64
	ElectricRate float64
}

// UtilityKey identifies a utility reading
type UtilityKey struct {
	RoomNo string
	Month  string
	Year   string
}

// Key returns the (room, month, year) identity of the reading
func (u Utility) Key() UtilityKey {
	return UtilityKey{RoomNo: u.RoomNo, Month: u.Month, Year: u.Year}
}

// Invoice is a billing snapshot for one contract-month
type Invoice struct {
	InvoiceID    string
	ContractID   string
	RoomNo       string
	Month        string
	Year         string
	RoomPrice    float64
	InternetFee  float64
	WaterBill    float64
	ElectricBill float64
	Total        float64
	Status       InvoiceStatus
}

// Payment records money received against an invoice
type Payment struct {
	InvoiceID string
	Amount    float64
	Date      string // YYYY-MM-DD
}

// Admin holds operator credentials
type Admin struct {
	Username string
	Password string
}
