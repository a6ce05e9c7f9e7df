package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"labstock/inventory"
)

// AppTitle is the base window title; the active screen name is
// appended to it.
const AppTitle = "Lab Stock"

// Screen identifies one of the application views reachable from the
// sidebar.
type Screen int

const (
	ScreenView Screen = iota
	ScreenScan
	ScreenAdd
	ScreenEdit
	ScreenRemove
	ScreenExport
	ScreenFinish
)

func (s Screen) Title() string {
	switch s {
	case ScreenView:
		return "View Stock"
	case ScreenScan:
		return "Scan"
	case ScreenAdd:
		return "Add Item"
	case ScreenEdit:
		return "Edit Item"
	case ScreenRemove:
		return "Remove Item"
	case ScreenExport:
		return "Export"
	case ScreenFinish:
		return "Checkout Result"
	default:
		return "Unknown"
	}
}

// Hooks are the callbacks the interface invokes in response to user
// actions. All of them are required.
type Hooks struct {
	OnScreenChange func(Screen)
	OnAddItem      func(inventory.Item) error
	OnEditItem     func(inventory.Item) error
	OnRemoveItem   func(partNum string) error
	OnExport       func(format, dir string) (string, error)
	OnGenerateQR   func(partNum, dir string) (string, error)
	OnScanFinish   func() error
	OnScanClear    func()
}

type MainInterface struct {
	window  fyne.Window
	hooks   Hooks
	current Screen

	mainContainer *fyne.Container
	content       *fyne.Container
	sidebar       *Sidebar
	statusBar     *StatusBar

	viewScreen   *ViewScreen
	scanScreen   *ScannerScreen
	addScreen    *AddScreen
	editScreen   *EditScreen
	removeScreen *RemoveScreen
	exportScreen *ExportScreen
	finishScreen *FinishScreen
}

func NewMainInterface(window fyne.Window, hooks Hooks) *MainInterface {
	gui := &MainInterface{
		window: window,
		hooks:  hooks,
	}

	gui.viewScreen = NewViewScreen()
	gui.scanScreen = NewScannerScreen(window, hooks.OnScanFinish, hooks.OnScanClear)
	gui.addScreen = NewAddScreen(window, hooks.OnAddItem)
	gui.editScreen = NewEditScreen(window, hooks.OnEditItem)
	gui.removeScreen = NewRemoveScreen(window, hooks.OnRemoveItem)
	gui.exportScreen = NewExportScreen(window, hooks.OnExport, hooks.OnGenerateQR)
	gui.finishScreen = NewFinishScreen(func() {
		gui.ShowScreen(ScreenView)
	})
	gui.sidebar = NewSidebar(gui.ShowScreen)
	gui.statusBar = NewStatusBar()

	// Stack order must match the Screen constants.
	gui.content = container.NewStack(
		gui.viewScreen.GetContainer(),
		gui.scanScreen.GetContainer(),
		gui.addScreen.GetContainer(),
		gui.editScreen.GetContainer(),
		gui.removeScreen.GetContainer(),
		gui.exportScreen.GetContainer(),
		gui.finishScreen.GetContainer(),
	)

	gui.mainContainer = container.NewBorder(
		nil,                          // top
		gui.statusBar.GetContainer(), // bottom
		gui.sidebar.GetContainer(),   // left
		nil,                          // right
		gui.content,                  // center
	)

	return gui
}

func (gui *MainInterface) Initialize() {
	gui.ShowScreen(ScreenView)
}

func (gui *MainInterface) GetMainContainer() *fyne.Container {
	return gui.mainContainer
}

// ShowScreen hides every view except the requested one and reports the
// change through OnScreenChange.
func (gui *MainInterface) ShowScreen(screen Screen) {
	for i, obj := range gui.content.Objects {
		if Screen(i) == screen {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
	gui.sidebar.SetActive(screen)
	gui.current = screen
	gui.window.SetTitle(AppTitle + " - " + screen.Title())
	gui.content.Refresh()

	if gui.hooks.OnScreenChange != nil {
		gui.hooks.OnScreenChange(screen)
	}
}

// ShowFinish displays the checkout result screen.
func (gui *MainInterface) ShowFinish(message string) {
	fyne.Do(func() {
		gui.finishScreen.SetMessage(message)
		gui.ShowScreen(ScreenFinish)
	})
}

func (gui *MainInterface) CurrentScreen() Screen {
	return gui.current
}

// SetItems pushes a fresh item snapshot to every screen that lists
// inventory.
func (gui *MainInterface) SetItems(items []inventory.Item) {
	fyne.Do(func() {
		gui.viewScreen.SetItems(items)
		gui.editScreen.SetItems(items)
		gui.removeScreen.SetItems(items)
		gui.statusBar.SetItemCount(len(items))
	})
}

func (gui *MainInterface) SetStatus(status string) {
	fyne.Do(func() {
		gui.statusBar.SetStatus(status)
	})
}

// SetVideoFrame is called from the capture goroutine with the latest
// camera frame.
func (gui *MainInterface) SetVideoFrame(img image.Image) {
	gui.scanScreen.SetFrame(img)
}

// SetScanSession refreshes the scan screen with the current session
// user and part list.
func (gui *MainInterface) SetScanSession(user string, parts []string) {
	fyne.Do(func() {
		gui.scanScreen.SetSession(user, parts)
	})
}
