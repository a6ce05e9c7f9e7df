package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"labstock/gui"
)

func (app *StockApp) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Inventory...", func() {
			app.mainGUI.ShowScreen(gui.ScreenExport)
		}),
		fyne.NewMenuItem("Generate QR Code...", func() {
			app.mainGUI.ShowScreen(gui.ScreenExport)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Sync Databases", func() {
			app.handleSync()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			app.cleanup()
			app.fyneApp.Quit()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			about := fmt.Sprintf("%s %s\n\nStock-room inventory tracking with\nGoogle Sheets and an offline mirror.",
				AppName, AppVersion)
			dialog.ShowInformation("About", about, app.window)
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, helpMenu)
	app.window.SetMainMenu(mainMenu)
}
