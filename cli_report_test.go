package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"labstock/inventory"
)

func reportItem(part string, b750, b757, min int) inventory.Item {
	it := inventory.Item{
		PartNum:      part,
		Manufacturer: "Acme",
		Description:  "A part",
		StockB750:    b750,
		StockB757:    b757,
		Minimum:      min,
	}
	it.Recompute()
	return it
}

func TestItemReport(t *testing.T) {
	items := []inventory.Item{
		reportItem("CAP-0042", 10, 5, 2),
		reportItem("RES-0007", 1, 0, 5),
		reportItem("IND-0001", 0, 0, 1),
	}

	report := itemReport(items)
	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "Part #"))
	assert.Contains(t, report, "CAP-0042")
	assert.Contains(t, report, "In Stock: 1  Low Stock: 1  Out Of Stock: 1  Total: 3")
}

func TestItemReportTruncatesLongCells(t *testing.T) {
	it := reportItem("PART-WITH-A-VERY-LONG-NUMBER", 1, 1, 0)
	it.Description = strings.Repeat("x", 100)

	report := itemReport([]inventory.Item{it})

	assert.NotContains(t, report, strings.Repeat("x", 100))
	assert.Contains(t, report, "~")
}

func TestItemReportEmpty(t *testing.T) {
	report := itemReport(nil)
	assert.Contains(t, report, "Total: 0")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd~", truncate("abcdef", 5))
	assert.Equal(t, "a", truncate("abc", 1))

	t.Run("cuts on rune boundaries", func(t *testing.T) {
		got := truncate("Würth Elektronik", 4)
		assert.Equal(t, "Wür~", got)
		assert.True(t, utf8.ValidString(got))
	})
}

func TestItemReportAlignsMultibyteCells(t *testing.T) {
	ascii := reportItem("RES-0007", 1, 1, 0)
	umlaut := reportItem("CAP-0042", 1, 1, 0)
	umlaut.Manufacturer = "Würth Elektronik GmbH & Co. KG"

	report := itemReport([]inventory.Item{ascii, umlaut})
	lines := strings.Split(report, "\n")

	assert.True(t, utf8.ValidString(report))
	// both data rows occupy the same number of columns
	assert.Equal(t, utf8.RuneCountInString(lines[2]), utf8.RuneCountInString(lines[3]))
}

func TestSortedUsers(t *testing.T) {
	assert.Equal(t, []string{"ada", "grace", "lin"}, sortedUsers([]string{"lin", "ada", "grace"}))
}
