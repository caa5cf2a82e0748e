package dorm

import (
	"strings"

	"github.com/google/uuid"
)

// ID prefixes for generated identifiers
const (
	TenantPrefix   = "T"
	ContractPrefix = "C"
	InvoicePrefix  = "I"
)

// IDGenerator produces a new identifier for the given prefix
type IDGenerator func(prefix string) string

// NewID returns prefix followed by eight upper-case hex characters of a
// random UUID, e.g. "T3F9A01BC".
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(id[:8])
}
