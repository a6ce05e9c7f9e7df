package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// exportFormats is the order the format selector offers.
var exportFormats = []string{"csv", "tsv", "psv", "pdf"}

// ExportScreen writes inventory exports and QR code labels to a chosen
// directory.
type ExportScreen struct {
	container *fyne.Container
	window    fyne.Window

	formatSelect *widget.Select
	dirEntry     *widget.Entry
	resultLabel  *widget.Label
	qrEntry      *widget.Entry

	onExport     func(format, dir string) (string, error)
	onGenerateQR func(partNum, dir string) (string, error)
}

func NewExportScreen(window fyne.Window,
	onExport func(format, dir string) (string, error),
	onGenerateQR func(partNum, dir string) (string, error)) *ExportScreen {

	es := &ExportScreen{
		window:       window,
		onExport:     onExport,
		onGenerateQR: onGenerateQR,
	}
	es.setupScreen()
	return es
}

func (es *ExportScreen) setupScreen() {
	es.formatSelect = widget.NewSelect(exportFormats, nil)
	es.formatSelect.SetSelected("csv")

	es.dirEntry = widget.NewEntry()
	es.dirEntry.SetPlaceHolder("Export directory")
	browseButton := widget.NewButton("Browse...", es.browse)

	exportButton := widget.NewButton("Export Inventory", es.export)
	exportButton.Importance = widget.HighImportance

	es.qrEntry = widget.NewEntry()
	es.qrEntry.SetPlaceHolder("Part # for QR label")
	qrButton := widget.NewButton("Generate QR Code", es.generateQR)

	es.resultLabel = widget.NewLabel("")
	es.resultLabel.Wrapping = fyne.TextWrapWord

	layout := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Export Inventory**"),
		widget.NewForm(
			widget.NewFormItem("Format", es.formatSelect),
			widget.NewFormItem("Directory", container.NewBorder(nil, nil, nil, browseButton, es.dirEntry)),
		),
		exportButton,
		widget.NewSeparator(),
		widget.NewRichTextFromMarkdown("**QR Labels**"),
		widget.NewForm(
			widget.NewFormItem("Part #", es.qrEntry),
		),
		qrButton,
		widget.NewSeparator(),
		es.resultLabel,
	)

	es.container = container.NewPadded(layout)
}

func (es *ExportScreen) GetContainer() *fyne.Container {
	return es.container
}

func (es *ExportScreen) browse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, es.window)
			return
		}
		if uri == nil {
			return
		}
		es.dirEntry.SetText(uri.Path())
	}, es.window)
}

func (es *ExportScreen) export() {
	path, err := es.onExport(es.formatSelect.Selected, strings.TrimSpace(es.dirEntry.Text))
	if err != nil {
		dialog.ShowError(err, es.window)
		return
	}
	es.resultLabel.SetText(fmt.Sprintf("Exported to %s", path))
}

func (es *ExportScreen) generateQR() {
	partNum := strings.TrimSpace(es.qrEntry.Text)
	if partNum == "" {
		dialog.ShowError(fmt.Errorf("enter a part number first"), es.window)
		return
	}
	path, err := es.onGenerateQR(partNum, strings.TrimSpace(es.dirEntry.Text))
	if err != nil {
		dialog.ShowError(err, es.window)
		return
	}
	es.resultLabel.SetText(fmt.Sprintf("QR code written to %s", path))
}
