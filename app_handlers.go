package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"labstock/export"
	"labstock/gui"
	"labstock/inventory"
	"labstock/scanner"
	"labstock/storage"
)

// opTimeout bounds every spreadsheet round trip issued from the GUI.
const opTimeout = 30 * time.Second

func (app *StockApp) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (app *StockApp) handleAddItem(item inventory.Item) error {
	if _, exists := app.store.Find(item.PartNum); exists {
		return fmt.Errorf("part %s already exists, edit it instead", item.PartNum)
	}

	ctx, cancel := app.opContext()
	defer cancel()
	if err := app.store.Update(ctx, inventory.UpdateAdd, item); err != nil {
		return err
	}

	app.mainGUI.SetItems(app.store.Items())
	app.mainGUI.SetStatus(fmt.Sprintf("Added %s", item.PartNum))
	return nil
}

func (app *StockApp) handleEditItem(item inventory.Item) error {
	if _, exists := app.store.Find(item.PartNum); !exists {
		return fmt.Errorf("part %s not found", item.PartNum)
	}

	ctx, cancel := app.opContext()
	defer cancel()
	if err := app.store.Update(ctx, inventory.UpdateEdit, item); err != nil {
		return err
	}

	app.mainGUI.SetItems(app.store.Items())
	app.mainGUI.SetStatus(fmt.Sprintf("Saved %s", item.PartNum))
	return nil
}

func (app *StockApp) handleRemoveItem(partNum string) error {
	ctx, cancel := app.opContext()
	defer cancel()
	if err := app.store.Update(ctx, inventory.UpdateRemove, inventory.Item{PartNum: partNum}); err != nil {
		return err
	}

	app.mainGUI.SetItems(app.store.Items())
	app.mainGUI.SetStatus(fmt.Sprintf("Removed %s", partNum))
	return nil
}

func (app *StockApp) handleExport(format, dir string) (string, error) {
	if dir == "" {
		dir = app.cfg.ExportDir
	}

	var path string
	var err error
	if format == "pdf" {
		path, err = export.WritePDF(dir, app.store.Items())
	} else {
		path, err = export.WriteSV(format, dir, app.store.Items())
	}
	if err != nil {
		return "", err
	}

	app.mainGUI.SetStatus(fmt.Sprintf("Exported %s", path))
	return path, nil
}

func (app *StockApp) handleGenerateQR(partNum, dir string) (string, error) {
	if _, exists := app.store.Find(partNum); !exists && !app.store.HasUser(partNum) {
		return "", fmt.Errorf("%s is not a known part or user", partNum)
	}
	if dir == "" {
		dir = app.cfg.ExportDir
	}
	return export.WriteQR(dir, partNum)
}

// handleScreenChange starts the camera when the scan view appears and
// stops it as soon as the user navigates away.
func (app *StockApp) handleScreenChange(screen gui.Screen) {
	if screen == gui.ScreenScan {
		if err := app.pipeline.Start(); err != nil {
			app.showError("Camera Error", err)
			return
		}
		app.mainGUI.SetStatus("Scanning...")
		return
	}

	if app.pipeline.Running() {
		app.pipeline.Stop()
		app.mainGUI.SetStatus("Ready")
	}
}

// handleDecode folds a decoded QR payload into the checkout session.
// It runs on the Fyne thread via the pipeline's dispatcher.
func (app *StockApp) handleDecode(payload string) {
	event := app.session.Observe(payload)

	switch event.Kind {
	case scanner.EventUser:
		app.mainGUI.SetStatus(fmt.Sprintf("User: %s", event.Value))
	case scanner.EventItem:
		app.mainGUI.SetStatus(fmt.Sprintf("Scanned %s", event.Value))
	case scanner.EventUnknown:
		app.mainGUI.SetStatus(fmt.Sprintf("Unrecognized code: %s", event.Value))
		return
	case scanner.EventIgnored:
		return
	}

	app.mainGUI.SetScanSession(app.session.User(), app.session.Parts())
}

func (app *StockApp) handleScanFinish() error {
	if !app.session.Ready() {
		return fmt.Errorf("scan a user badge and at least one item first")
	}

	user := app.session.User()
	parts := app.session.Parts()

	ctx, cancel := app.opContext()
	defer cancel()
	record, err := app.store.Checkout(ctx, user, parts)
	if err != nil {
		// Nothing was subtracted; the session stays intact so the
		// user can drop the offending item and finish again.
		app.mainGUI.SetStatus("Checkout failed")
		app.mainGUI.ShowFinish(fmt.Sprintf("Checkout failed: %v\n\nNo stock was subtracted.", err))
		return nil
	}

	app.session.Clear()
	app.mainGUI.SetScanSession("", nil)
	app.mainGUI.SetItems(app.store.Items())
	app.mainGUI.SetStatus(fmt.Sprintf("Checked out %d items to %s", len(record.Parts), record.User))
	app.mainGUI.ShowFinish(fmt.Sprintf("Checked out %d items to %s.\nReference %s",
		len(record.Parts), record.User, record.ID))
	return nil
}

func (app *StockApp) handleScanClear() {
	app.session.Clear()
	app.mainGUI.SetScanSession("", nil)
	app.mainGUI.SetStatus("Session cleared")
}

func (app *StockApp) handleSync() {
	app.mainGUI.SetStatus("Syncing databases...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		err := storage.SyncMirror(ctx, app.backend, app.mirror, app.log)
		fyne.Do(func() {
			if err != nil {
				app.showError("Sync Error", err)
				app.mainGUI.SetStatus("Sync failed")
				return
			}
			app.mainGUI.SetStatus("Databases in sync")
		})
	}()
}

func (app *StockApp) showError(title string, err error) {
	app.log.Error("App", err, map[string]interface{}{"context": title})
	dialog.ShowError(err, app.window)
}
