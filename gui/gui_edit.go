package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"labstock/inventory"
)

// EditScreen pairs the searchable table with a form. Selecting a row
// loads it into the form; the part number stays fixed because it is
// the record key.
type EditScreen struct {
	container *fyne.Container
	table     *ItemTable
	form      *ItemForm
	window    fyne.Window
	onEdit    func(inventory.Item) error

	selected bool
}

func NewEditScreen(window fyne.Window, onEdit func(inventory.Item) error) *EditScreen {
	es := &EditScreen{
		window: window,
		onEdit: onEdit,
	}

	es.table = NewItemTable(es.load)
	es.form = NewItemForm("Save Changes", es.submit)
	es.form.LockPartNum()

	split := container.NewHSplit(
		es.table.GetContainer(),
		container.NewVBox(
			widget.NewRichTextFromMarkdown("**Select an item to edit**"),
			es.form.GetContainer(),
		),
	)
	split.SetOffset(0.55)

	es.container = container.NewStack(split)
	return es
}

func (es *EditScreen) GetContainer() *fyne.Container {
	return es.container
}

func (es *EditScreen) SetItems(items []inventory.Item) {
	es.table.SetItems(items)
}

func (es *EditScreen) load(item inventory.Item) {
	es.form.SetItem(item)
	es.selected = true
}

func (es *EditScreen) submit() {
	if !es.selected {
		dialog.ShowInformation("Edit Item", "Select an item in the table first.", es.window)
		return
	}
	item, err := es.form.Item()
	if err != nil {
		dialog.ShowError(err, es.window)
		return
	}
	if err := es.onEdit(item); err != nil {
		dialog.ShowError(err, es.window)
	}
}
