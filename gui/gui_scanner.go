package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	VideoDisplayWidth  = 640
	VideoDisplayHeight = 480
)

// ScannerScreen shows the live camera feed next to the running
// checkout session: the scanned user and the scanned parts.
type ScannerScreen struct {
	container *fyne.Container
	video     *canvas.Image
	userLabel *widget.Label
	partsList *widget.List
	window    fyne.Window

	parts []string

	onFinish func() error
	onClear  func()
}

func NewScannerScreen(window fyne.Window, onFinish func() error, onClear func()) *ScannerScreen {
	ss := &ScannerScreen{
		window:   window,
		onFinish: onFinish,
		onClear:  onClear,
	}
	ss.setupScreen()
	return ss
}

func (ss *ScannerScreen) setupScreen() {
	ss.video = canvas.NewImageFromImage(nil)
	ss.video.FillMode = canvas.ImageFillContain
	ss.video.SetMinSize(fyne.NewSize(VideoDisplayWidth, VideoDisplayHeight))

	ss.userLabel = widget.NewLabel("User: --")

	ss.partsList = widget.NewList(
		func() int { return len(ss.parts) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(ss.parts[id])
		},
	)

	finishButton := widget.NewButton("Finish Checkout", func() {
		if err := ss.onFinish(); err != nil {
			dialog.ShowError(err, ss.window)
		}
	})
	finishButton.Importance = widget.HighImportance
	clearButton := widget.NewButton("Clear Session", ss.onClear)

	sessionPanel := container.NewBorder(
		container.NewVBox(
			widget.NewRichTextFromMarkdown("**Checkout Session**"),
			ss.userLabel,
		),
		container.NewVBox(finishButton, clearButton),
		nil, nil,
		ss.partsList,
	)

	videoPanel := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Camera**"),
		ss.video,
	)

	split := container.NewHSplit(videoPanel, sessionPanel)
	split.SetOffset(0.65)

	ss.container = container.NewStack(split)
}

func (ss *ScannerScreen) GetContainer() *fyne.Container {
	return ss.container
}

// SetFrame swaps in the latest camera frame. Callers are expected to
// already be on the Fyne thread.
func (ss *ScannerScreen) SetFrame(img image.Image) {
	if img == nil {
		return
	}
	ss.video.Image = img
	ss.video.Refresh()
}

// SetSession refreshes the user label and the scanned part list.
func (ss *ScannerScreen) SetSession(user string, parts []string) {
	if user == "" {
		ss.userLabel.SetText("User: --")
	} else {
		ss.userLabel.SetText("User: " + user)
	}
	ss.parts = parts
	ss.partsList.Refresh()
}
