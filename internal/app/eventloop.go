package app

import (
	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/config/watcher"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventClosed:
		return ErrQuit
	default:
		return nil
	}
}

// handleResize gives the buffer the new text area. The buffer scrolls as
// little as needed to keep the cursor visible.
func (app *Application) handleResize(ev backend.Event) error {
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
	app.metrics.RecordResize()
	if app.renderer != nil {
		app.backend.Clear()
		app.buf.Resize(app.renderer.TextArea())
	}
	return nil
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	app.metrics.RecordKey()
	switch ev.Key {
	case backend.KeyCtrlL:
		app.backend.Clear()
		return nil
	case backend.KeyCtrlS:
		app.clearMessage()
		if err := app.Save(""); err != nil {
			app.notifyError(err)
		}
		return nil
	}

	switch app.mode {
	case ModeInsert:
		app.handleInsertKey(ev)
		return nil
	case ModeCommand:
		return app.handleCommandKey(ev)
	default:
		app.clearMessage()
		app.handleNormalKey(ev)
		return nil
	}
}

// handleConfigChange reloads the config file after the watcher saw it change.
// A file that fails to load or validate leaves the running settings alone.
func (app *Application) handleConfigChange(ev watcher.Event) {
	log := app.logger.WithComponent("config")
	log.Info("%s %s", ev.Op, ev.Path)

	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		return
	}

	app.metrics.RecordReload()
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.notifyError(NewOperationError("reload", app.opts.ConfigPath, err))
		return
	}

	app.applyConfig(cfg)
	app.Notify("config reloaded")
}
