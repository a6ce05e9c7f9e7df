package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Sidebar is the navigation column on the left edge of the window.
type Sidebar struct {
	container *fyne.Container
	buttons   map[Screen]*widget.Button
}

func NewSidebar(onSelect func(Screen)) *Sidebar {
	sb := &Sidebar{
		buttons: make(map[Screen]*widget.Button),
	}

	screens := []Screen{
		ScreenView, ScreenScan, ScreenAdd,
		ScreenEdit, ScreenRemove, ScreenExport,
	}

	items := make([]fyne.CanvasObject, 0, len(screens))
	for _, screen := range screens {
		screen := screen
		button := widget.NewButton(screen.Title(), func() {
			onSelect(screen)
		})
		sb.buttons[screen] = button
		items = append(items, button)
	}

	sb.container = container.NewVBox(items...)
	return sb
}

func (sb *Sidebar) GetContainer() *fyne.Container {
	return sb.container
}

// SetActive emphasizes the button for the visible screen.
func (sb *Sidebar) SetActive(screen Screen) {
	for s, button := range sb.buttons {
		if s == screen {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
}
