package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthRange_BoundariesInclusive(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)

	ref := time.Date(2024, time.March, 10, 12, 0, 0, 0, loc)
	start, end := MonthRange(ref, loc)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 31, 23, 59, 59, 999999999, loc), end)

	lastInstant := time.Date(2024, time.March, 31, 23, 59, 59, 999000000, loc)
	assert.False(t, lastInstant.After(end))

	nextMonth := time.Date(2024, time.April, 1, 0, 0, 0, 0, loc)
	assert.True(t, nextMonth.After(end))
}

func TestMonthRange_February(t *testing.T) {
	loc := time.UTC

	_, end := MonthRange(time.Date(2024, time.February, 5, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, 29, end.Day()) // leap year

	_, end = MonthRange(time.Date(2023, time.February, 5, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, 28, end.Day())
}

func TestDayRange(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")

	// 20:00 UTC is already the next day in Kolkata (+05:30)
	utcEvening := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC)
	start, end := DayRange(utcEvening, loc)
	assert.Equal(t, 11, start.Day())
	assert.Equal(t, 11, end.Day())
}

func TestSameDate_AcrossZones(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")

	a := time.Date(2024, time.March, 10, 19, 0, 0, 0, time.UTC) // Mar 11 in Kolkata
	b := time.Date(2024, time.March, 11, 3, 0, 0, 0, time.UTC)  // Mar 11 in Kolkata
	assert.True(t, SameDate(a, b, loc))
	assert.False(t, SameDate(a, b, time.UTC))
}
