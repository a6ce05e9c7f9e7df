package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"labstock/inventory"
)

// RemoveScreen shows the searchable table; selecting a row asks for
// confirmation before deleting.
type RemoveScreen struct {
	table    *ItemTable
	window   fyne.Window
	onRemove func(partNum string) error
}

func NewRemoveScreen(window fyne.Window, onRemove func(partNum string) error) *RemoveScreen {
	rs := &RemoveScreen{
		window:   window,
		onRemove: onRemove,
	}
	rs.table = NewItemTable(rs.confirm)
	return rs
}

func (rs *RemoveScreen) GetContainer() *fyne.Container {
	return rs.table.GetContainer()
}

func (rs *RemoveScreen) SetItems(items []inventory.Item) {
	rs.table.SetItems(items)
}

func (rs *RemoveScreen) confirm(item inventory.Item) {
	message := fmt.Sprintf("Remove %s (%s) from the inventory?", item.PartNum, item.Description)
	dialog.ShowConfirm("Remove Item", message, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := rs.onRemove(item.PartNum); err != nil {
			dialog.ShowError(err, rs.window)
		}
	}, rs.window)
}
