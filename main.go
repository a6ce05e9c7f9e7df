package main

// Entry point. The application logic is split across:
// - app_core.go: core application structure and initialization
// - app_handlers.go: event handlers for user interactions
// - app_menus.go: menu setup and handlers
// - cli.go: command-line subcommands; the bare binary opens the GUI

func main() {
	Execute()
}
