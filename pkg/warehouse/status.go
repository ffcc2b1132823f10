package warehouse

import "strings"

// Status is the normalized agreement status stored in the warehouse.
type Status string

// Agreement statuses. StatusUnknown absorbs every raw value outside the
// enumeration; StatusInactive is assigned by the reconciliation sweep.
const (
	StatusActive      Status = "ACTIVE"
	StatusPending     Status = "PENDING"
	StatusExpired     Status = "EXPIRED"
	StatusCancelled   Status = "CANCELLED"
	StatusVoid        Status = "VOID"
	StatusSuspended   Status = "SUSPENDED"
	StatusTransferred Status = "TRANSFERRED"
	StatusInactive    Status = "INACTIVE"
	StatusUnknown     Status = "UNKNOWN"
)

var knownStatuses = map[Status]struct{}{
	StatusActive:      {},
	StatusPending:     {},
	StatusExpired:     {},
	StatusCancelled:   {},
	StatusVoid:        {},
	StatusSuspended:   {},
	StatusTransferred: {},
	StatusInactive:    {},
	StatusUnknown:     {},
}

// NormalizeStatus maps a raw source status onto the warehouse enumeration.
// It is total and idempotent: any value outside the enumeration, including
// the empty string, maps to StatusUnknown.
func NormalizeStatus(raw string) Status {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}
