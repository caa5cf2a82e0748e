package dorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPreservesOrder(t *testing.T) {
	idx := RoomIndex([]Room{{RoomNo: "B"}, {RoomNo: "A"}, {RoomNo: "C"}})

	assert.Equal(t, 3, idx.Len())
	r, ok := idx.Get("A")
	require.True(t, ok)
	assert.Equal(t, "A", r.RoomNo)

	var order []string
	for _, r := range idx.Values() {
		order = append(order, r.RoomNo)
	}
	assert.Equal(t, []string{"B", "A", "C"}, order)
}

func TestIndexPutUpserts(t *testing.T) {
	idx := RoomIndex([]Room{{RoomNo: "101", Type: "Single"}})

	assert.True(t, idx.Put(Room{RoomNo: "101", Type: "Double"}))
	assert.False(t, idx.Put(Room{RoomNo: "102", Type: "Suite"}))

	values := idx.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "Double", values[0].Type)
	assert.Equal(t, "102", values[1].RoomNo)
}

func TestIndexDuplicateKeysFirstWins(t *testing.T) {
	idx := AdminIndex([]Admin{
		{Username: "admin", Password: "first"},
		{Username: "admin", Password: "second"},
	})

	a, ok := idx.Get("admin")
	require.True(t, ok)
	assert.Equal(t, "first", a.Password)
	assert.Equal(t, 2, idx.Len())

	assert.True(t, idx.Delete("admin"))
	assert.Equal(t, 0, idx.Len())
}

func TestIndexDeleteRebuildsPositions(t *testing.T) {
	idx := TenantIndex([]Tenant{{TenantID: "T1"}, {TenantID: "T2"}, {TenantID: "T3"}})

	assert.True(t, idx.Delete("T1"))
	assert.False(t, idx.Delete("T1"))

	got, ok := idx.Get("T3")
	require.True(t, ok)
	assert.Equal(t, "T3", got.TenantID)
}

func TestIndexUpdate(t *testing.T) {
	idx := UtilityIndex([]Utility{{RoomNo: "R1", Month: "05", Year: "2024", CurrWater: 10}})
	key := UtilityKey{RoomNo: "R1", Month: "05", Year: "2024"}

	assert.True(t, idx.Update(key, func(u *Utility) { u.CurrWater = 20 }))
	assert.False(t, idx.Update(UtilityKey{RoomNo: "R9"}, func(u *Utility) {}))

	u, _ := idx.Get(key)
	assert.Equal(t, 20, u.CurrWater)
}

func TestIndexFilter(t *testing.T) {
	idx := TenantIndex([]Tenant{
		{TenantID: "T1", Name: "Anan Srisuk"},
		{TenantID: "T2", Name: "Boon"},
		{TenantID: "T3", Name: "Ananya"},
	})

	got := idx.Filter(func(t Tenant) bool { return strings.Contains(t.Name, "Anan") })
	require.Len(t, got, 2)
	assert.Equal(t, "T1", got[0].TenantID)
	assert.Equal(t, "T3", got[1].TenantID)
}

func TestNewID(t *testing.T) {
	id := NewID(TenantPrefix)
	assert.Len(t, id, 9)
	assert.True(t, strings.HasPrefix(id, "T"))
	assert.NotEqual(t, id, NewID(TenantPrefix))
}

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		month, year string
		wantM       string
		wantY       string
		wantErr     bool
	}{
		{"5", "2024", "05", "2024", false},
		{"12", "2024", "12", "2024", false},
		{"13", "2024", "", "", true},
		{"ab", "2024", "", "", true},
		{"01", "x", "", "", true},
	}
	for _, tt := range tests {
		m, y, err := NormalizePeriod(tt.month, tt.year)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidInput)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.wantM, m)
		assert.Equal(t, tt.wantY, y)
	}
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2024-05-10"))
	assert.ErrorIs(t, ValidateDate("2024-5-10"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateDate("10/05/2024"), ErrInvalidInput)
}

func TestParseRoomStatus(t *testing.T) {
	st, err := ParseRoomStatus("occupied")
	require.NoError(t, err)
	assert.Equal(t, RoomOccupied, st)

	_, err = ParseRoomStatus("Closed")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
