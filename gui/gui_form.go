package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"labstock/inventory"
)

// ItemForm is the shared entry form for adding and editing items. The
// derived fields (total, excess, status) update live as the stock
// counts change.
type ItemForm struct {
	container *fyne.Container

	partNum      *widget.Entry
	manufacturer *widget.Entry
	description  *widget.Entry
	stockB750    *widget.Entry
	stockB757    *widget.Entry
	minB750      *widget.Entry
	minB757      *widget.Entry

	totalLabel  *widget.Label
	excessLabel *widget.Label
	statusLabel *widget.Label

	submitButton *widget.Button
}

func NewItemForm(submitLabel string, onSubmit func()) *ItemForm {
	f := &ItemForm{}
	f.setupForm(submitLabel, onSubmit)
	return f
}

func (f *ItemForm) setupForm(submitLabel string, onSubmit func()) {
	f.partNum = widget.NewEntry()
	f.manufacturer = widget.NewEntry()
	f.description = widget.NewEntry()

	f.stockB750 = f.newCountEntry()
	f.stockB757 = f.newCountEntry()
	f.minB750 = f.newCountEntry()
	f.minB757 = f.newCountEntry()

	f.totalLabel = widget.NewLabel("0")
	f.excessLabel = widget.NewLabel("0")
	f.statusLabel = widget.NewLabel(string(inventory.StatusOutOfStock))

	f.submitButton = widget.NewButton(submitLabel, onSubmit)
	f.submitButton.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Part #", f.partNum),
		widget.NewFormItem("Manufacturer", f.manufacturer),
		widget.NewFormItem("Description", f.description),
		widget.NewFormItem("B750 Stock", f.stockB750),
		widget.NewFormItem("B757 Stock", f.stockB757),
		widget.NewFormItem("B750 Minimum", f.minB750),
		widget.NewFormItem("B757 Minimum", f.minB757),
	)

	derived := container.NewHBox(
		widget.NewLabel("Total:"), f.totalLabel,
		widget.NewSeparator(),
		widget.NewLabel("Excess:"), f.excessLabel,
		widget.NewSeparator(),
		widget.NewLabel("Status:"), f.statusLabel,
	)

	f.container = container.NewVBox(
		form,
		derived,
		f.submitButton,
	)
}

// newCountEntry builds a numeric entry that refreshes the derived
// labels on every keystroke.
func (f *ItemForm) newCountEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText("0")
	entry.OnChanged = func(string) {
		f.refreshDerived()
	}
	return entry
}

func (f *ItemForm) refreshDerived() {
	b750, _ := parseCount(f.stockB750.Text)
	b757, _ := parseCount(f.stockB757.Text)
	min750, _ := parseCount(f.minB750.Text)
	min757, _ := parseCount(f.minB757.Text)

	total := inventory.TotalOf(b750, b757)
	f.totalLabel.SetText(strconv.Itoa(total))
	f.excessLabel.SetText(strconv.Itoa(inventory.ExcessOf(total, min750, min757)))
	f.statusLabel.SetText(string(inventory.StatusFor(total, min750+min757)))
}

// GetContainer returns the form layout.
func (f *ItemForm) GetContainer() *fyne.Container {
	return f.container
}

// LockPartNum makes the part number read-only, for editing where the
// part number is the record key.
func (f *ItemForm) LockPartNum() {
	f.partNum.Disable()
}

// SetItem loads an existing item into the form.
func (f *ItemForm) SetItem(it inventory.Item) {
	f.partNum.SetText(it.PartNum)
	f.manufacturer.SetText(it.Manufacturer)
	f.description.SetText(it.Description)
	f.stockB750.SetText(strconv.Itoa(it.StockB750))
	f.stockB757.SetText(strconv.Itoa(it.StockB757))
	f.minB750.SetText(strconv.Itoa(it.Minimum))
	f.minB757.SetText(strconv.Itoa(it.MinimumSallie))
	f.refreshDerived()
}

// Item validates the form and returns the item with derived fields
// recomputed.
func (f *ItemForm) Item() (inventory.Item, error) {
	partNum := strings.TrimSpace(f.partNum.Text)
	if partNum == "" {
		return inventory.Item{}, fmt.Errorf("part number is required")
	}

	it := inventory.Item{
		PartNum:      partNum,
		Manufacturer: strings.TrimSpace(f.manufacturer.Text),
		Description:  strings.TrimSpace(f.description.Text),
	}

	var countErr error
	count := func(name, text string) int {
		n, err := parseCount(text)
		if err != nil && countErr == nil {
			countErr = fmt.Errorf("%s must be a whole number", name)
		}
		if n < 0 && countErr == nil {
			countErr = fmt.Errorf("%s must not be negative", name)
		}
		return n
	}

	it.StockB750 = count("B750 Stock", f.stockB750.Text)
	it.StockB757 = count("B757 Stock", f.stockB757.Text)
	it.Minimum = count("B750 Minimum", f.minB750.Text)
	it.MinimumSallie = count("B757 Minimum", f.minB757.Text)
	if countErr != nil {
		return inventory.Item{}, countErr
	}

	it.Recompute()
	return it, nil
}

// Clear resets every entry to its initial state.
func (f *ItemForm) Clear() {
	f.partNum.SetText("")
	f.manufacturer.SetText("")
	f.description.SetText("")
	f.stockB750.SetText("0")
	f.stockB757.SetText("0")
	f.minB750.SetText("0")
	f.minB757.SetText("0")
	f.refreshDerived()
}

func parseCount(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	return strconv.Atoi(text)
}
