package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"labstock/config"
	"labstock/gui"
	"labstock/internal/logger"
	"labstock/notify"
	"labstock/scanner"
	"labstock/storage"
)

const (
	AppName      = "Lab Stock"
	AppID        = "com.labstock.app"
	AppVersion   = "1.0.0"
	WindowWidth  = 1280
	WindowHeight = 800
)

type StockApp struct {
	fyneApp fyne.App
	window  fyne.Window
	mainGUI *gui.MainInterface

	cfg     config.Config
	log     logger.Logger
	store   *storage.Store
	backend storage.Backend
	mirror  *storage.Mirror

	pipeline *scanner.Pipeline
	session  *scanner.Session
	mailer   *notify.Mailer
}

// storeLookup classifies QR payloads against the store caches.
type storeLookup struct {
	store *storage.Store
}

func (l storeLookup) IsUser(value string) bool {
	return l.store.HasUser(value)
}

func (l storeLookup) IsItem(value string) bool {
	_, ok := l.store.Find(value)
	return ok
}

func NewStockApp(cfg config.Config, log logger.Logger) (*StockApp, error) {
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ctx := context.Background()

	backend, err := storage.NewSheetsBackend(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet backend: %w", err)
	}

	mirror, err := storage.OpenMirror(cfg.MirrorDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	store := storage.NewStore(backend, mirror, log)
	if err := store.Refresh(ctx); err != nil {
		mirror.Close()
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	mailer := notify.NewMailer(cfg, log)
	if mailer.Enabled() {
		store.SetNotifier(mailer)
	}

	stockApp := &StockApp{
		fyneApp: fyneApp,
		window:  window,
		cfg:     cfg,
		log:     log,
		store:   store,
		backend: backend,
		mirror:  mirror,
		mailer:  mailer,
	}

	stockApp.session = scanner.NewSession(storeLookup{store: store})
	stockApp.pipeline = scanner.NewPipeline(cfg.CameraDevice,
		time.Duration(cfg.ScanIntervalMS)*time.Millisecond, log)

	stockApp.mainGUI = gui.NewMainInterface(window, gui.Hooks{
		OnScreenChange: stockApp.handleScreenChange,
		OnAddItem:      stockApp.handleAddItem,
		OnEditItem:     stockApp.handleEditItem,
		OnRemoveItem:   stockApp.handleRemoveItem,
		OnExport:       stockApp.handleExport,
		OnGenerateQR:   stockApp.handleGenerateQR,
		OnScanFinish:   stockApp.handleScanFinish,
		OnScanClear:    stockApp.handleScanClear,
	})

	stockApp.pipeline.SetFrameCallback(stockApp.mainGUI.SetVideoFrame)
	stockApp.pipeline.SetDecodeCallback(stockApp.handleDecode)

	stockApp.mainGUI.Initialize()
	stockApp.mainGUI.SetItems(store.Items())

	// Repair the offline mirror in the background so startup is not
	// blocked on row-by-row sheet comparisons.
	go func() {
		if err := storage.SyncMirror(ctx, backend, mirror, log); err != nil {
			log.Warning("App", "startup mirror sync failed",
				map[string]interface{}{"error": err.Error()})
		}
	}()

	return stockApp, nil
}

func (app *StockApp) Run() {
	app.setupMenus()

	app.window.SetContent(app.mainGUI.GetMainContainer())

	app.window.SetCloseIntercept(func() {
		app.cleanup()
		app.window.Close()
	})

	app.window.ShowAndRun()
}

func (app *StockApp) cleanup() {
	app.pipeline.Stop()

	if err := app.mirror.Close(); err != nil {
		app.log.Warning("App", "failed to close mirror database",
			map[string]interface{}{"error": err.Error()})
	}
}
