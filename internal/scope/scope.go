// Package scope holds the single visibility policy shared by the
// attendance and leave managers. Query code must route role checks
// through For instead of re-implementing admin branching locally.
package scope

import "strings"

type Visibility int

const (
	// OwnOnly restricts a query to records belonging to the viewer.
	OwnOnly Visibility = iota
	// All returns every record, unrestricted.
	All
)

// For maps a session role to its visibility. Superadmin sees
// everything; every other role (Employee, Lead, unknown) sees only
// its own records.
func For(role string) Visibility {
	if strings.EqualFold(strings.TrimSpace(role), "Superadmin") {
		return All
	}
	return OwnOnly
}
