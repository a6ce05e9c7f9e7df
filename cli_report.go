package main

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"labstock/inventory"
)

// reportWidths follows the column order of inventory.Headers.
var reportWidths = []int{16, 16, 32, 6, 6, 6, 13, 7, 13, 13}

// itemReport renders the inventory as a fixed-width table followed by
// a stock status tally.
func itemReport(items []inventory.Item) string {
	var b strings.Builder

	writeRow := func(cells []string) {
		for i, cell := range cells {
			b.WriteString(pad(truncate(cell, reportWidths[i]-1), reportWidths[i]))
		}
		b.WriteByte('\n')
	}

	headers := inventory.Headers()
	writeRow(headers)

	total := 0
	for _, w := range reportWidths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total))
	b.WriteByte('\n')

	tally := map[inventory.Status]int{}
	for _, it := range items {
		writeRow(it.Row())
		tally[it.Status]++
	}

	fmt.Fprintf(&b, "\n%s: %d  %s: %d  %s: %d  Total: %d\n",
		inventory.StatusInStock, tally[inventory.StatusInStock],
		inventory.StatusLowStock, tally[inventory.StatusLowStock],
		inventory.StatusOutOfStock, tally[inventory.StatusOutOfStock],
		len(items))

	return b.String()
}

// truncate shortens a cell so columns never run together; a trailing
// tilde marks the cut. Cuts land on rune boundaries so multibyte cells
// stay valid UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "~"
}

// pad right-pads to the column width counting runes, not bytes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func sortedUsers(users []string) []string {
	sort.Strings(users)
	return users
}
