package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the stock state of an item as it appears in the
// "Stock Status" spreadsheet column.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out Of Stock"
)

// UpdateType is the kind of change applied to the databases.
type UpdateType int

const (
	UpdateAdd UpdateType = iota
	UpdateEdit
	UpdateRemove
)

func (t UpdateType) String() string {
	switch t {
	case UpdateAdd:
		return "add"
	case UpdateEdit:
		return "edit"
	case UpdateRemove:
		return "remove"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Item is a single stock-room record. Field order matches the column
// order of the Parts worksheet and the inventory_items mirror table.
type Item struct {
	PartNum       string `db:"part_num"`
	Manufacturer  string `db:"manufacturer"`
	Description   string `db:"description"`
	Total         int    `db:"total"`
	StockB750     int    `db:"stock_b750"`
	StockB757     int    `db:"stock_b757"`
	Minimum       int    `db:"minimum"`
	Excess        int    `db:"excess"`
	MinimumSallie int    `db:"minimum_sallie"`
	Status        Status `db:"stock_status"`
}

// Headers returns the Parts worksheet column names in canonical order.
func Headers() []string {
	return []string{
		"Part #", "Manufacturer", "Description", "Total",
		"B750", "B757", "B750 Minimum", "Excess",
		"B757 Minimum", "Stock Status",
	}
}

// TotalOf is the combined stock of both locations, floored at zero.
func TotalOf(b750, b757 int) int {
	total := b750 + b757
	if total < 0 {
		return 0
	}
	return total
}

// ExcessOf is the amount of stock above the combined minimums, floored
// at zero.
func ExcessOf(total, min750, min757 int) int {
	excess := total - (min750 + min757)
	if excess < 0 {
		return 0
	}
	return excess
}

// StatusFor derives the stock status from the combined total and the
// combined minimum.
func StatusFor(total, combinedMinimum int) Status {
	switch {
	case total <= 0:
		return StatusOutOfStock
	case total < combinedMinimum:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Recompute refreshes the derived fields (Total, Excess, Status) from
// the per-location stock counts and minimums.
func (it *Item) Recompute() {
	it.Total = TotalOf(it.StockB750, it.StockB757)
	it.Excess = ExcessOf(it.Total, it.Minimum, it.MinimumSallie)
	it.Status = StatusFor(it.Total, it.Minimum+it.MinimumSallie)
}

// Row converts the item to a spreadsheet row in canonical column order.
func (it Item) Row() []string {
	return []string{
		it.PartNum,
		it.Manufacturer,
		it.Description,
		strconv.Itoa(it.Total),
		strconv.Itoa(it.StockB750),
		strconv.Itoa(it.StockB757),
		strconv.Itoa(it.Minimum),
		strconv.Itoa(it.Excess),
		strconv.Itoa(it.MinimumSallie),
		string(it.Status),
	}
}

// FromRow parses a spreadsheet row into an Item. Short rows and blank
// numeric cells are tolerated; blanks count as zero. The part number
// column must be non-empty.
func FromRow(row []string) (Item, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	partNum := cell(0)
	if partNum == "" {
		return Item{}, fmt.Errorf("row has no part number: %v", row)
	}

	num := func(i int) (int, error) {
		s := cell(i)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("column %q of part %s: %w", Headers()[i], partNum, err)
		}
		return n, nil
	}

	it := Item{
		PartNum:      partNum,
		Manufacturer: cell(1),
		Description:  cell(2),
		Status:       Status(cell(9)),
	}

	var err error
	if it.Total, err = num(3); err != nil {
		return Item{}, err
	}
	if it.StockB750, err = num(4); err != nil {
		return Item{}, err
	}
	if it.StockB757, err = num(5); err != nil {
		return Item{}, err
	}
	if it.Minimum, err = num(6); err != nil {
		return Item{}, err
	}
	if it.Excess, err = num(7); err != nil {
		return Item{}, err
	}
	if it.MinimumSallie, err = num(8); err != nil {
		return Item{}, err
	}

	return it, nil
}
