package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FinishScreen reports the outcome of a checkout and leads back to the
// stock listing.
type FinishScreen struct {
	container *fyne.Container
	message   *widget.Label
}

func NewFinishScreen(onBack func()) *FinishScreen {
	fs := &FinishScreen{
		message: widget.NewLabel(""),
	}
	fs.message.Alignment = fyne.TextAlignCenter
	fs.message.Wrapping = fyne.TextWrapWord

	backButton := widget.NewButton("Back to Stock", onBack)
	backButton.Importance = widget.HighImportance

	fs.container = container.NewCenter(container.NewVBox(
		widget.NewRichTextFromMarkdown("**Checkout Result**"),
		fs.message,
		backButton,
	))
	return fs
}

func (fs *FinishScreen) GetContainer() *fyne.Container {
	return fs.container
}

func (fs *FinishScreen) SetMessage(message string) {
	fs.message.SetText(message)
}
