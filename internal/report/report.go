package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/dorm-ledger/internal/billing"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
)

// UtilityStats summarises the consumption of all rooms read in one month
type UtilityStats struct {
	Rooms       int
	AvgWater    float64
	AvgElectric float64
	MaxWater    int
	MaxElectric int
}

// MonthRow is one line of the monthly report
type MonthRow struct {
	Key      string // MM/YYYY
	Month    int
	Year     int
	Invoiced decimal.Decimal
	Received decimal.Decimal
	Utility  *UtilityStats // nil when no reading exists for the month
}

// MonthKey formats a month/year pair as "MM/YYYY". Numeric fields are
// zero-padded, so "5"/"2024" and "05"/"2024" share a key; anything else is
// joined as given.
func MonthKey(month, year string) string {
	m, err := strconv.Atoi(month)
	if err != nil {
		return month + "/" + year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return month + "/" + year
	}
	return fmt.Sprintf("%02d/%04d", m, y)
}

// parseKey splits "MM/YYYY" into numbers; ok is false for keys that do not
// follow that shape.
func parseKey(key string) (month, year int, ok bool) {
	m, y, found := strings.Cut(key, "/")
	if !found {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

type utilityAcc struct {
	water    []int
	electric []int
}

// Build aggregates payments, invoices and utility readings per month.
// Rows are ordered chronologically; keys that are not numeric month/year
// pairs come last in string order.
func Build(payments []dorm.Payment, invoices []dorm.Invoice, utilities []dorm.Utility) []MonthRow {
	received := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if len(p.Date) < 7 {
			continue
		}
		key := MonthKey(p.Date[5:7], p.Date[0:4])
		received[key] = received[key].Add(decimal.NewFromFloat(p.Amount))
	}

	invoiced := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		key := MonthKey(inv.Month, inv.Year)
		invoiced[key] = invoiced[key].Add(decimal.NewFromFloat(inv.Total))
	}

	readings := make(map[string]*utilityAcc)
	for _, u := range utilities {
		key := MonthKey(u.Month, u.Year)
		acc, ok := readings[key]
		if !ok {
			acc = &utilityAcc{}
			readings[key] = acc
		}
		w, e := billing.ComputeUnits(u)
		acc.water = append(acc.water, w)
		acc.electric = append(acc.electric, e)
	}

	keys := make(map[string]struct{})
	for k := range received {
		keys[k] = struct{}{}
	}
	for k := range invoiced {
		keys[k] = struct{}{}
	}
	for k := range readings {
		keys[k] = struct{}{}
	}

	rows := make([]MonthRow, 0, len(keys))
	for key := range keys {
		row := MonthRow{
			Key:      key,
			Invoiced: invoiced[key],
			Received: received[key],
		}
		row.Month, row.Year, _ = parseKey(key)
		if acc, ok := readings[key]; ok {
			row.Utility = summarise(acc)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		mi, yi, oki := parseKey(rows[i].Key)
		mj, yj, okj := parseKey(rows[j].Key)
		switch {
		case oki && okj:
			if yi != yj {
				return yi < yj
			}
			if mi != mj {
				return mi < mj
			}
			return rows[i].Key < rows[j].Key
		case oki != okj:
			return oki
		default:
			return rows[i].Key < rows[j].Key
		}
	})
	return rows
}

func summarise(acc *utilityAcc) *UtilityStats {
	stats := &UtilityStats{Rooms: len(acc.water)}
	stats.AvgWater, stats.MaxWater = meanMax(acc.water)
	stats.AvgElectric, stats.MaxElectric = meanMax(acc.electric)
	return stats
}

func meanMax(values []int) (float64, int) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0
	peak := values[0]
	for _, v := range values {
		sum += v
		if v > peak {
			peak = v
		}
	}
	return float64(sum) / float64(len(values)), peak
}

// Find returns the row for the given "MM/YYYY" key
func Find(rows []MonthRow, key string) (MonthRow, error) {
	if m, y, found := strings.Cut(key, "/"); found {
		key = MonthKey(m, y)
	}
	for _, r := range rows {
		if r.Key == key {
			return r, nil
		}
	}
	return MonthRow{}, fmt.Errorf("month %s: %w", key, dorm.ErrNotFound)
}
