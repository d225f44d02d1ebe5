package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	ist := time.Date(2026, time.November, 1, 2, 0, 0, 0, IST)

	// 02:00 IST on the 1st is still October in UTC.
	assert.Equal(t, "2026-10", MonthKey(ist))
	assert.Equal(t, "2026-03", MonthKey(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)))
}

func TestDisplayDate(t *testing.T) {
	utc := time.Date(2026, time.January, 31, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "01 Feb 2026", DisplayDate(utc))
	assert.Equal(t, "", DisplayDate(time.Time{}))
}
