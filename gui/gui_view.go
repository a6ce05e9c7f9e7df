package gui

import (
	"fyne.io/fyne/v2"

	"labstock/inventory"
)

// ViewScreen is the read-only stock listing.
type ViewScreen struct {
	table *ItemTable
}

func NewViewScreen() *ViewScreen {
	return &ViewScreen{
		table: NewItemTable(nil),
	}
}

func (vs *ViewScreen) GetContainer() *fyne.Container {
	return vs.table.GetContainer()
}

func (vs *ViewScreen) SetItems(items []inventory.Item) {
	vs.table.SetItems(items)
}
