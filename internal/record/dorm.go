package record

import "github.com/beesaferoot/dorm-ledger/internal/dorm"

var (
	contractFields = []string{"contractID", "tenantID", "roomNo", "startDate", "endDate", "roomPrice", "internetFee"}
	utilityFields  = []string{"roomNo", "month", "year", "prevWater", "currWater",
		"prevElectric", "currElectric", "waterRate", "electricRate"}
	invoiceFields = []string{"invoiceID", "contractID", "roomNo", "month", "year",
		"roomPrice", "internetFee", "waterBill", "electricBill", "total", "status"}
	paymentFields = []string{"invoiceID", "amount", "date"}
)

var RoomCodec = Codec[dorm.Room]{
	Name:   "room",
	Fields: []string{"roomNo", "type", "status"},
	Encode: func(r dorm.Room) []string {
		return []string{r.RoomNo, r.Type, string(r.Status)}
	},
	Decode: func(f []string) (dorm.Room, error) {
		return dorm.Room{RoomNo: f[0], Type: f[1], Status: dorm.RoomStatus(f[2])}, nil
	},
}

var TenantCodec = Codec[dorm.Tenant]{
	Name:   "tenant",
	Fields: []string{"tenantID", "name", "phone", "citizenID", "birthDate", "address", "roomNo"},
	Encode: func(t dorm.Tenant) []string {
		return []string{t.TenantID, t.Name, t.Phone, t.CitizenID, t.BirthDate, t.Address, t.RoomNo}
	},
	Decode: func(f []string) (dorm.Tenant, error) {
		return dorm.Tenant{
			TenantID:  f[0],
			Name:      f[1],
			Phone:     f[2],
			CitizenID: f[3],
			BirthDate: f[4],
			Address:   f[5],
			RoomNo:    f[6],
		}, nil
	},
}

var ContractCodec = Codec[dorm.Contract]{
	Name:   "contract",
	Fields: contractFields,
	Encode: func(c dorm.Contract) []string {
		return []string{c.ContractID, c.TenantID, c.RoomNo, c.StartDate, c.EndDate,
			FormatFloat(c.RoomPrice), FormatFloat(c.InternetFee)}
	},
	Decode: func(f []string) (dorm.Contract, error) {
		r := newFieldReader(f, contractFields)
		c := dorm.Contract{
			ContractID:  r.str(0),
			TenantID:    r.str(1),
			RoomNo:      r.str(2),
			StartDate:   r.str(3),
			EndDate:     r.str(4),
			RoomPrice:   r.float(5),
			InternetFee: r.float(6),
		}
		return c, r.err
	},
}

var UtilityCodec = Codec[dorm.Utility]{
	Name:   "utility",
	Fields: utilityFields,
	Encode: func(u dorm.Utility) []string {
		return []string{u.RoomNo, u.Month, u.Year,
			FormatInt(u.PrevWater), FormatInt(u.CurrWater),
			FormatInt(u.PrevElectric), FormatInt(u.CurrElectric),
			FormatFloat(u.WaterRate), FormatFloat(u.ElectricRate)}
	},
	Decode: func(f []string) (dorm.Utility, error) {
		r := newFieldReader(f, utilityFields)
		u := dorm.Utility{
			RoomNo:       r.str(0),
			Month:        r.str(1),
			Year:         r.str(2),
			PrevWater:    r.int(3),
			CurrWater:    r.int(4),
			PrevElectric: r.int(5),
			CurrElectric: r.int(6),
			WaterRate:    r.float(7),
			ElectricRate: r.float(8),
		}
		return u, r.err
	},
}

var InvoiceCodec = Codec[dorm.Invoice]{
	Name:   "invoice",
	Fields: invoiceFields,
	Encode: func(inv dorm.Invoice) []string {
		return []string{inv.InvoiceID, inv.ContractID, inv.RoomNo, inv.Month, inv.Year,
			FormatFloat(inv.RoomPrice), FormatFloat(inv.InternetFee),
			FormatFloat(inv.WaterBill), FormatFloat(inv.ElectricBill),
			FormatFloat(inv.Total), string(inv.Status)}
	},
	Decode: func(f []string) (dorm.Invoice, error) {
		r := newFieldReader(f, invoiceFields)
		inv := dorm.Invoice{
			InvoiceID:    r.str(0),
			ContractID:   r.str(1),
			RoomNo:       r.str(2),
			Month:        r.str(3),
			Year:         r.str(4),
			RoomPrice:    r.float(5),
			InternetFee:  r.float(6),
			WaterBill:    r.float(7),
			ElectricBill: r.float(8),
			Total:        r.float(9),
			Status:       dorm.InvoiceStatus(r.str(10)),
		}
		return inv, r.err
	},
}

var PaymentCodec = Codec[dorm.Payment]{
	Name:   "payment",
	Fields: paymentFields,
	Encode: func(p dorm.Payment) []string {
		return []string{p.InvoiceID, FormatFloat(p.Amount), p.Date}
	},
	Decode: func(f []string) (dorm.Payment, error) {
		r := newFieldReader(f, paymentFields)
		p := dorm.Payment{InvoiceID: r.str(0), Amount: r.float(1), Date: r.str(2)}
		return p, r.err
	},
}

var AdminCodec = Codec[dorm.Admin]{
	Name:   "admin",
	Fields: []string{"username", "password"},
	Encode: func(a dorm.Admin) []string {
		return []string{a.Username, a.Password}
	},
	Decode: func(f []string) (dorm.Admin, error) {
		return dorm.Admin{Username: f[0], Password: f[1]}, nil
	},
}
