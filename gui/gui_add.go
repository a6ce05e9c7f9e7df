package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"labstock/inventory"
)

// AddScreen hosts the blank item form.
type AddScreen struct {
	container *fyne.Container
	form      *ItemForm
	window    fyne.Window
	onAdd     func(inventory.Item) error
}

func NewAddScreen(window fyne.Window, onAdd func(inventory.Item) error) *AddScreen {
	as := &AddScreen{
		window: window,
		onAdd:  onAdd,
	}
	as.form = NewItemForm("Add Item", as.submit)
	as.container = container.NewPadded(as.form.GetContainer())
	return as
}

func (as *AddScreen) GetContainer() *fyne.Container {
	return as.container
}

func (as *AddScreen) submit() {
	item, err := as.form.Item()
	if err != nil {
		dialog.ShowError(err, as.window)
		return
	}
	if err := as.onAdd(item); err != nil {
		dialog.ShowError(err, as.window)
		return
	}
	as.form.Clear()
}
