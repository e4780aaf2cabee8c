package util

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$999.99", FormatMoney(999.99))
	assert.Equal(t, "$1,029.98", FormatMoney(1029.98))
	assert.Equal(t, "$549.00", FormatMoney(549))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "-$12.50", FormatMoney(-12.5))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "900", FormatCount(900))
	assert.Equal(t, "12,345", FormatCount(12345))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Unknown", FormatDate(time.Time{}))
	assert.Equal(t, "Jan 15, 2024", FormatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 4, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, "Today", FormatDateHuman(day(2024, 3, 20), now))
	assert.Equal(t, "Yesterday", FormatDateHuman(day(2024, 3, 19), now))
	assert.Equal(t, "3 days ago", FormatDateHuman(day(2024, 3, 17), now))
	assert.Equal(t, "Jan 15", FormatDateHuman(day(2024, 1, 15), now))
	assert.Equal(t, "Dec 31 '23", FormatDateHuman(day(2023, 12, 31), now))
	assert.Equal(t, "Unknown", FormatDateHuman(time.Time{}, now))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Laptop", TruncateString("Laptop", 10))
	assert.Equal(t, "Stand...", TruncateString("Standing Desk", 8))
	assert.Equal(t, "St", TruncateString("Standing Desk", 2))

	styled := "\x1b[31mOut of Stock\x1b[0m"
	assert.Equal(t, styled, TruncateString(styled, 12))
	cut := TruncateString(styled, 8)
	assert.Equal(t, 8, ansi.StringWidth(cut))
	assert.Equal(t, "Out o...", ansi.Strip(cut))
}
