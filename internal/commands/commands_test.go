package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/dorm"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func testApp(t *testing.T, backend string) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:      dir,
		Files:        config.DefaultFiles(),
		Backend:      backend,
		SQLitePath:   filepath.Join(dir, "dorm.db"),
		ReportFile:   "report.txt",
		OnCorrupt:    config.OnCorruptAbort,
		DefaultAdmin: true,
	}
	n := 0
	ids := func(prefix string) string {
		n++
		return fmt.Sprintf("%s%04d", prefix, n)
	}
	return NewApp(cfg, nil, service.WithIDGenerator(ids))
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := RootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := execute(t, app, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestRoomCmd(t *testing.T) {
	cmd := RoomCmd(testApp(t, config.BackendFile))
	assert.Equal(t, "room", cmd.Use)
	assert.Equal(t, "Manage rooms", cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "edit", "delete", "list"}, names)
}

func TestUpCmd(t *testing.T) {
	cmd := UpCmd(testApp(t, config.BackendSQLite))
	assert.Equal(t, "up", cmd.Use)
	assert.Equal(t, "Apply all pending migrations", cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
}

func TestDownCmd(t *testing.T) {
	cmd := DownCmd(testApp(t, config.BackendSQLite))
	assert.Equal(t, "down", cmd.Use)
	assert.Equal(t, "Revert the last migration", cmd.Short)
}

func TestHistoryCmd(t *testing.T) {
	cmd := HistoryCmd(testApp(t, config.BackendSQLite))
	assert.Equal(t, "history", cmd.Use)
	assert.Equal(t, "Show migration history", cmd.Short)
}

func TestDefaultAdminCreatedOnFirstRun(t *testing.T) {
	app := testApp(t, config.BackendFile)

	out := mustExecute(t, app, "admin", "list")
	assert.Contains(t, out, "admin")

	_, err := os.Stat(filepath.Join(app.Config.DataDir, "Admin.dat"))
	require.NoError(t, err)

	mustExecute(t, app, "admin", "verify", "admin", "--password", "admin")
	_, err = execute(t, app, "admin", "verify", "admin", "--password", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestDormWorkflow(t *testing.T) {
	app := testApp(t, config.BackendFile)

	out := mustExecute(t, app, "room", "add", "101", "--type", "Single")
	assert.Equal(t, "Added room 101 (Single, Available)\n", out)
	mustExecute(t, app, "room", "add", "102", "--type", "Double")

	out = mustExecute(t, app, "tenant", "add", "--name", "Anan Srisuk", "--phone", "0812345678", "--birth-date", "1999-02-01")
	assert.Equal(t, "Added tenant ID = T0001\n", out)

	out = mustExecute(t, app, "contract", "add", "--tenant", "T0001", "--room", "101",
		"--start", "2024-01-01", "--end", "2024-12-31", "--price", "3000", "--internet", "300")
	assert.Equal(t, "Contract added ID: C0002\n", out)

	out = mustExecute(t, app, "room", "list")
	assert.Equal(t, "RoomNo    Type           Status\n"+
		strings.Repeat("-", 37)+"\n"+
		"101       Single         Occupied\n"+
		"102       Double         Available\n", out)

	out = mustExecute(t, app, "tenant", "find", "--room", "101")
	assert.Equal(t, "T0001 | Anan Srisuk | 101\n", out)

	mustExecute(t, app, "utility", "record", "--room", "101", "--month", "5", "--year", "2024",
		"--prev-water", "100", "--curr-water", "130", "--prev-electric", "500", "--curr-electric", "550",
		"--water-rate", "5", "--electric-rate", "4")
	out = mustExecute(t, app, "utility", "units", "101", "05", "2024")
	assert.Equal(t, "Water units: 30 -> Bill: 150.00\nElectric units: 50 -> Bill: 200.00\n", out)

	out = mustExecute(t, app, "invoice", "create", "C0002", "05", "2024")
	assert.Equal(t, "Invoice created ID: I0003 Total: 3650.00\n", out)

	out = mustExecute(t, app, "payment", "mark-paid", "I0003", "--amount", "3650", "--date", "2024-05-10")
	assert.Equal(t, "Marked PAID and recorded payment.\n", out)

	_, err := execute(t, app, "payment", "mark-paid", "I0003", "--amount", "3650", "--date", "2024-05-11")
	assert.ErrorIs(t, err, dorm.ErrAlreadyPaid)

	out = mustExecute(t, app, "invoice", "show", "I0003")
	assert.Contains(t, out, "Status: PAID")

	out = mustExecute(t, app, "tenant", "view", "T0001")
	assert.Contains(t, out, "Name: Anan Srisuk\n")
	assert.Contains(t, out, "I0003")

	mustExecute(t, app, "contract", "end", "C0002")
	out = mustExecute(t, app, "tenant", "list")
	assert.Contains(t, out, "T0001       Anan Srisuk         0812345678\n")

	_, err = execute(t, app, "contract", "end", "C0002")
	assert.ErrorIs(t, err, dorm.ErrNotFound)
}

func TestReportCmd(t *testing.T) {
	app := testApp(t, config.BackendFile)
	dir := app.Config.DataDir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Invoice.dat"), []byte(
		"I1|C1|101|05|2024|3000.000000|300.000000|150.000000|200.000000|3650.000000|PAID\n"+
			"I2|C2|102|05|2024|2000.000000|0.000000|0.000000|0.000000|2000.000000|UNPAID\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Payment.dat"), []byte("I1|3000.000000|2024-05-10\n"), 0644))

	xlsxPath := filepath.Join(dir, "report.xlsx")
	out := mustExecute(t, app, "report", "--xlsx", xlsxPath)

	assert.Contains(t, out, "========== Monthly Report ==========\n")
	assert.Contains(t, out, "05/2024   5650.00        3000.00        -")
	assert.Contains(t, out, "Report saved to '"+filepath.Join(dir, "report.txt")+"'")

	saved, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, string(saved)))

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	cell, err := f.GetCellValue("Monthly Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "05/2024", cell)
}

func TestCorruptDataFails(t *testing.T) {
	app := testApp(t, config.BackendFile)
	require.NoError(t, os.WriteFile(filepath.Join(app.Config.DataDir, "Payment.dat"), []byte("I1|abc|2024-05-10\n"), 0644))

	_, err := execute(t, app, "payment", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	app.Config.OnCorrupt = config.OnCorruptSkip
	out := mustExecute(t, app, "payment", "list")
	assert.NotContains(t, out, "I1")
}

func TestDBCommands(t *testing.T) {
	app := testApp(t, config.BackendSQLite)

	out := mustExecute(t, app, "db", "migrate", "status")
	assert.Contains(t, out, "create_dorm_tables")
	assert.Contains(t, out, "Pending")

	out = mustExecute(t, app, "db", "migrate", "up", "--dry-run")
	assert.Contains(t, out, "Pending migrations:")

	out = mustExecute(t, app, "db", "migrate", "up")
	assert.Contains(t, out, "Applied migration: create_dorm_tables (20240101000000)")
	assert.Contains(t, out, "Applied migration: index_room_numbers (20240115000000)")

	out = mustExecute(t, app, "db", "migrate", "up")
	assert.Equal(t, "No pending migrations.\n", out)

	out = mustExecute(t, app, "db", "migrate", "history")
	assert.Contains(t, out, "index_room_numbers")

	out = mustExecute(t, app, "db", "migrate", "down")
	assert.Equal(t, "Reverted migration: index_room_numbers (20240115000000)\n", out)
}

func TestImportCmd(t *testing.T) {
	app := testApp(t, config.BackendSQLite)
	dir := app.Config.DataDir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Room.dat"), []byte("101|Single|Available\n102|Double|Occupied\n"), 0644))

	out := mustExecute(t, app, "db", "import")
	assert.Contains(t, out, "room       2\n")
	assert.Contains(t, out, "admin      0\n")

	out = mustExecute(t, app, "room", "list")
	assert.Contains(t, out, "102       Double         Occupied")

	app.Config.Backend = config.BackendFile
	_, err := execute(t, app, "db", "import")
	assert.Error(t, err)
}
