package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/migration"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

func sqliteDialector(path string) gorm.Dialector { return sqlite.Open(path) }

func postgresDialector(dsn string) gorm.Dialector { return postgres.Open(dsn) }

// Row types. Position keeps the collection order across a round trip.

type RoomRow struct {
	ID       uint `gorm:"primaryKey"`
	Position int  `gorm:"not null;index"`
	RoomNo   string
	Type     string
	Status   string
}

func (RoomRow) TableName() string { return "rooms" }

type TenantRow struct {
	ID        uint `gorm:"primaryKey"`
	Position  int  `gorm:"not null;index"`
	TenantID  string
	Name      string
	Phone     string
	CitizenID string
	BirthDate string
	Address   string
	RoomNo    string
}

func (TenantRow) TableName() string { return "tenants" }

type ContractRow struct {
	ID          uint `gorm:"primaryKey"`
	Position    int  `gorm:"not null;index"`
	ContractID  string
	TenantID    string
	RoomNo      string
	StartDate   string
	EndDate     string
	RoomPrice   float64
	InternetFee float64
}

func (ContractRow) TableName() string { return "contracts" }

type UtilityRow struct {
	ID           uint `gorm:"primaryKey"`
	Position     int  `gorm:"not null;index"`
	RoomNo       string
	Month        string
	Year         string
	PrevWater    int
	CurrWater    int
	PrevElectric int
	CurrElectric int
	WaterRate    float64
	ElectricRate float64
}

func (UtilityRow) TableName() string { return "utilities" }

type InvoiceRow struct {
	ID           uint `gorm:"primaryKey"`
	Position     int  `gorm:"not null;index"`
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
	Status       string
}

func (InvoiceRow) TableName() string { return "invoices" }

type PaymentRow struct {
	ID        uint `gorm:"primaryKey"`
	Position  int  `gorm:"not null;index"`
	InvoiceID string
	Amount    float64
	Date      string
}

func (PaymentRow) TableName() string { return "payments" }

type AdminRow struct {
	ID       uint `gorm:"primaryKey"`
	Position int  `gorm:"not null;index"`
	Username string
	Password string
}

func (AdminRow) TableName() string { return "admins" }

func allRows() []interface{} {
	return []interface{}{
		&RoomRow{}, &TenantRow{}, &ContractRow{}, &UtilityRow{},
		&InvoiceRow{}, &PaymentRow{}, &AdminRow{},
	}
}

// Migrations returns the schema history of the SQL backend
func Migrations() []*migration.Migration {
	return []*migration.Migration{
		{
			Version: "20240101000000",
			Name:    "create_dorm_tables",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(allRows()...)
			},
			Down: func(db *gorm.DB) error {
				rows := allRows()
				for i := len(rows) - 1; i >= 0; i-- {
					if err := db.Migrator().DropTable(rows[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version: "20240115000000",
			Name:    "index_room_numbers",
			Up: func(db *gorm.DB) error {
				for _, stmt := range []string{
					"CREATE INDEX IF NOT EXISTS idx_tenants_room_no ON tenants (room_no)",
					"CREATE INDEX IF NOT EXISTS idx_contracts_room_no ON contracts (room_no)",
					"CREATE INDEX IF NOT EXISTS idx_invoices_room_no ON invoices (room_no)",
				} {
					if err := db.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(db *gorm.DB) error {
				for _, stmt := range []string{
					"DROP INDEX IF EXISTS idx_invoices_room_no",
					"DROP INDEX IF EXISTS idx_contracts_room_no",
					"DROP INDEX IF EXISTS idx_tenants_room_no",
				} {
					if err := db.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// NewMigrator returns a migrator loaded with the dormitory schema
func NewMigrator(db *gorm.DB) *migration.Migrator {
	return migration.NewMigrator(db, Migrations()...)
}

// SQLTable keeps one collection in a database table of row type R
type SQLTable[T, R any] struct {
	db      *gorm.DB
	toRow   func(pos int, item T) R
	fromRow func(R) T
}

// Load returns the rows in position order
func (t *SQLTable[T, R]) Load(ctx context.Context) ([]T, error) {
	var rows []R
	if err := t.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, t.fromRow(r))
	}
	return items, nil
}

// Save replaces the table contents in a single transaction
func (t *SQLTable[T, R]) Save(ctx context.Context, items []T) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return t.replace(tx, items)
	})
}

// replace clears the table and inserts items inside tx
func (t *SQLTable[T, R]) replace(tx *gorm.DB, items []T) error {
	var zero R
	if err := tx.Where("1 = 1").Delete(&zero).Error; err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]R, 0, len(items))
	for i, item := range items {
		rows = append(rows, t.toRow(i, item))
	}
	if err := tx.CreateInBatches(rows, 200).Error; err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}
	return nil
}

func (t *SQLTable[T, R]) database() *gorm.DB { return t.db }

// NewSQLStore returns a store over an already migrated database
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{
		Rooms: &SQLTable[dorm.Room, RoomRow]{
			db: db,
			toRow: func(pos int, r dorm.Room) RoomRow {
				return RoomRow{Position: pos, RoomNo: r.RoomNo, Type: r.Type, Status: string(r.Status)}
			},
			fromRow: func(r RoomRow) dorm.Room {
				return dorm.Room{RoomNo: r.RoomNo, Type: r.Type, Status: dorm.RoomStatus(r.Status)}
			},
		},
		Tenants: &SQLTable[dorm.Tenant, TenantRow]{
			db: db,
			toRow: func(pos int, t dorm.Tenant) TenantRow {
				return TenantRow{Position: pos, TenantID: t.TenantID, Name: t.Name, Phone: t.Phone,
					CitizenID: t.CitizenID, BirthDate: t.BirthDate, Address: t.Address, RoomNo: t.RoomNo}
			},
			fromRow: func(r TenantRow) dorm.Tenant {
				return dorm.Tenant{TenantID: r.TenantID, Name: r.Name, Phone: r.Phone,
					CitizenID: r.CitizenID, BirthDate: r.BirthDate, Address: r.Address, RoomNo: r.RoomNo}
			},
		},
		Contracts: &SQLTable[dorm.Contract, ContractRow]{
			db: db,
			toRow: func(pos int, c dorm.Contract) ContractRow {
				return ContractRow{Position: pos, ContractID: c.ContractID, TenantID: c.TenantID, RoomNo: c.RoomNo,
					StartDate: c.StartDate, EndDate: c.EndDate, RoomPrice: c.RoomPrice, InternetFee: c.InternetFee}
			},
			fromRow: func(r ContractRow) dorm.Contract {
				return dorm.Contract{ContractID: r.ContractID, TenantID: r.TenantID, RoomNo: r.RoomNo,
					StartDate: r.StartDate, EndDate: r.EndDate, RoomPrice: r.RoomPrice, InternetFee: r.InternetFee}
			},
		},
		Utilities: &SQLTable[dorm.Utility, UtilityRow]{
			db: db,
			toRow: func(pos int, u dorm.Utility) UtilityRow {
				return UtilityRow{Position: pos, RoomNo: u.RoomNo, Month: u.Month, Year: u.Year,
					PrevWater: u.PrevWater, CurrWater: u.CurrWater, PrevElectric: u.PrevElectric,
					CurrElectric: u.CurrElectric, WaterRate: u.WaterRate, ElectricRate: u.ElectricRate}
			},
			fromRow: func(r UtilityRow) dorm.Utility {
				return dorm.Utility{RoomNo: r.RoomNo, Month: r.Month, Year: r.Year,
					PrevWater: r.PrevWater, CurrWater: r.CurrWater, PrevElectric: r.PrevElectric,
					CurrElectric: r.CurrElectric, WaterRate: r.WaterRate, ElectricRate: r.ElectricRate}
			},
		},
		Invoices: &SQLTable[dorm.Invoice, InvoiceRow]{
			db: db,
			toRow: func(pos int, i dorm.Invoice) InvoiceRow {
				return InvoiceRow{Position: pos, InvoiceID: i.InvoiceID, ContractID: i.ContractID, RoomNo: i.RoomNo,
					Month: i.Month, Year: i.Year, RoomPrice: i.RoomPrice, InternetFee: i.InternetFee,
					WaterBill: i.WaterBill, ElectricBill: i.ElectricBill, Total: i.Total, Status: string(i.Status)}
			},
			fromRow: func(r InvoiceRow) dorm.Invoice {
				return dorm.Invoice{InvoiceID: r.InvoiceID, ContractID: r.ContractID, RoomNo: r.RoomNo,
					Month: r.Month, Year: r.Year, RoomPrice: r.RoomPrice, InternetFee: r.InternetFee,
					WaterBill: r.WaterBill, ElectricBill: r.ElectricBill, Total: r.Total,
					Status: dorm.InvoiceStatus(r.Status)}
			},
		},
		Payments: &SQLTable[dorm.Payment, PaymentRow]{
			db: db,
			toRow: func(pos int, p dorm.Payment) PaymentRow {
				return PaymentRow{Position: pos, InvoiceID: p.InvoiceID, Amount: p.Amount, Date: p.Date}
			},
			fromRow: func(r PaymentRow) dorm.Payment {
				return dorm.Payment{InvoiceID: r.InvoiceID, Amount: r.Amount, Date: r.Date}
			},
		},
		Admins: &SQLTable[dorm.Admin, AdminRow]{
			db: db,
			toRow: func(pos int, a dorm.Admin) AdminRow {
				return AdminRow{Position: pos, Username: a.Username, Password: a.Password}
			},
			fromRow: func(r AdminRow) dorm.Admin {
				return dorm.Admin{Username: r.Username, Password: r.Password}
			},
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
