package employee

import "strings"

// Account status values. Stored free-text upstream, so comparisons go
// through NormalizeStatus (trim + case-fold) rather than raw equality.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

// Role values carried by the directory and embedded in session tokens.
const (
	RoleEmployee   = "Employee"
	RoleLead       = "Lead"
	RoleSuperadmin = "Superadmin"
)

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsActive is the status gate: every authentication and mutation path
// must reject an employee for which this returns false.
func IsActive(status string) bool {
	return NormalizeStatus(status) == NormalizeStatus(StatusActive)
}
