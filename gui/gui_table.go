package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"labstock/inventory"
)

// itemColumnWidths follows the column order of inventory.Headers.
var itemColumnWidths = []float32{120, 130, 260, 60, 60, 60, 110, 70, 110, 110}

// ItemTable is a searchable inventory table. Typing in the search box
// narrows the rows with case-folded substring matching.
type ItemTable struct {
	container *fyne.Container
	table     *widget.Table
	search    *widget.Entry

	items   []inventory.Item
	visible []inventory.Item

	onSelect func(inventory.Item)
}

func NewItemTable(onSelect func(inventory.Item)) *ItemTable {
	it := &ItemTable{onSelect: onSelect}
	it.setupTable()
	return it
}

func (it *ItemTable) setupTable() {
	it.search = widget.NewEntry()
	it.search.SetPlaceHolder("Search parts...")
	it.search.OnChanged = func(term string) {
		it.visible = inventory.Filter(it.items, term)
		it.table.UnselectAll()
		it.table.Refresh()
	}

	headers := inventory.Headers()

	it.table = widget.NewTable(
		func() (int, int) {
			return len(it.visible), len(headers)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row >= len(it.visible) {
				label.SetText("")
				return
			}
			label.SetText(it.visible[id.Row].Row()[id.Col])
		},
	)

	it.table.ShowHeaderRow = true
	it.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabel("")
	}
	it.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row == -1 && id.Col < len(headers) {
			label.TextStyle = fyne.TextStyle{Bold: true}
			label.SetText(headers[id.Col])
		}
	}

	for i, width := range itemColumnWidths {
		it.table.SetColumnWidth(i, width)
	}

	it.table.OnSelected = func(id widget.TableCellID) {
		if it.onSelect == nil || id.Row < 0 || id.Row >= len(it.visible) {
			return
		}
		it.onSelect(it.visible[id.Row])
	}

	it.container = container.NewBorder(
		it.search, // top
		nil, nil, nil,
		it.table,
	)
}

func (it *ItemTable) GetContainer() *fyne.Container {
	return it.container
}

// SetItems replaces the table contents and re-applies the current
// search term.
func (it *ItemTable) SetItems(items []inventory.Item) {
	it.items = items
	it.visible = inventory.Filter(items, it.search.Text)
	it.table.UnselectAll()
	it.table.Refresh()
}
