package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Corrupt record policies
const (
	OnCorruptAbort = "abort"
	OnCorruptSkip  = "skip"
)

// Files names the flat file of every collection, relative to DataDir
type Files struct {
	Room     string
	Tenant   string
	Contract string
	Utility  string
	Invoice  string
	Payment  string
	Admin    string
}

// DefaultFiles returns the standard collection file names
func DefaultFiles() Files {
	return Files{
		Room:     "Room.dat",
		Tenant:   "Tenant.dat",
		Contract: "Contract.dat",
		Utility:  "Utility.dat",
		Invoice:  "Invoice.dat",
		Payment:  "Payment.dat",
		Admin:    "Admin.dat",
	}
}

// Config holds runtime settings read from the environment
type Config struct {
	DataDir      string
	Files        Files
	Backend      string
	SQLitePath   string
	DatabaseURL  string
	ReportFile   string
	OnCorrupt    string
	DefaultAdmin bool
	StudentFile  string

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:     getEnv("DORM_DATA_DIR", "."),
		Files:       DefaultFiles(),
		Backend:     getEnv("DORM_BACKEND", BackendFile),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		OnCorrupt:   getEnv("DORM_ON_CORRUPT", OnCorruptAbort),
		StudentFile: getEnv("STUDENT_FILE", "student.dat"),
	}
	cfg.SQLitePath = getEnv("DORM_SQLITE_PATH", filepath.Join(cfg.DataDir, "dorm.db"))
	cfg.ReportFile = getEnv("DORM_REPORT_FILE", "report.txt")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")

	defaultAdmin, err := strconv.ParseBool(getEnv("DORM_DEFAULT_ADMIN", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DORM_DEFAULT_ADMIN: %w", err)
	}
	cfg.DefaultAdmin = defaultAdmin

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL not set in environment or .env file")
		}
	default:
		return fmt.Errorf("unknown DORM_BACKEND %q (want file, sqlite or postgres)", c.Backend)
	}

	switch c.OnCorrupt {
	case OnCorruptAbort, OnCorruptSkip:
	default:
		return fmt.Errorf("unknown DORM_ON_CORRUPT %q (want abort or skip)", c.OnCorrupt)
	}
	return nil
}

// Path returns name resolved against the data directory
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
