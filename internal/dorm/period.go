package dorm

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the on-disk date format
const DateLayout = "2006-01-02"

// NormalizePeriod validates a month/year pair and returns them zero-padded
// as "MM" and "YYYY".
func NormalizePeriod(month, year string) (string, string, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", "", fmt.Errorf("%w: month %q", ErrInvalidInput, month)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return "", "", fmt.Errorf("%w: year %q", ErrInvalidInput, year)
	}
	return fmt.Sprintf("%02d", m), fmt.Sprintf("%04d", y), nil
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return nil
}
