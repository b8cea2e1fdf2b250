package timeutil

import (
	"os"
	"time"
)

// DefaultZone is the reporting time zone used for "today" and
// "current month" windows. Every aggregate compares instants against
// calendar boundaries computed in this one zone so results do not
// drift with the server's local zone.
const DefaultZone = "Asia/Kolkata"

// ReportingZone resolves the zone from REPORT_TZ, falling back to
// DefaultZone and finally UTC if the name cannot be loaded.
func ReportingZone() *time.Location {
	name := os.Getenv("REPORT_TZ")
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayRange returns the first and last instant of the calendar day
// containing t, in loc. Both bounds are inclusive.
func DayRange(t time.Time, loc *time.Location) (start, end time.Time) {
	lt := t.In(loc)
	start = time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	end = time.Date(lt.Year(), lt.Month(), lt.Day(), 23, 59, 59, 999999999, loc)
	return start, end
}

// MonthRange returns the first and last instant of the calendar month
// containing t, in loc. Both bounds are inclusive: a record stamped
// 23:59:59.999 on the last day belongs to the month, one stamped at
// midnight of the next month does not.
func MonthRange(t time.Time, loc *time.Location) (start, end time.Time) {
	lt := t.In(loc)
	start = time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	// day 0 of the next month is the last day of this one
	lastDay := time.Date(lt.Year(), lt.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	end = time.Date(lt.Year(), lt.Month(), lastDay, 23, 59, 59, 999999999, loc)
	return start, end
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}
