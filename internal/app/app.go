// Package app provides the main application structure and coordination
// for the keyline editor. It wires the editing core to the terminal, the
// command line, configuration, scripting and cursor position memory, and
// runs the event loop that owns the buffer.
package app

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/config/watcher"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/viewport"
	"github.com/dshills/keyline/internal/plugin/lua"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/statusline"
	"github.com/dshills/keyline/internal/session"
)

// Application is the central coordinator for all keyline components.
// Only the loop goroutine touches the buffer; the backend poller and the
// config watcher hand their events over through channels.
type Application struct {
	opts      Options
	cfg       config.Config
	logger    *Logger
	metrics   *Metrics
	sessionID string

	// Editor components
	buf       *buffer.TextBuffer
	backend   backend.Backend
	renderer  *renderer.Renderer
	lua       *lua.State
	positions *session.Store
	watcher   *watcher.Watcher

	// Modal state
	mode    Mode
	pending rune
	cmdline []rune
	message string
	msgType statusline.MessageType

	// Event sources
	events  chan backend.Event
	reloads chan watcher.Event

	// State
	running   atomic.Bool
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Path is the file to open on startup. Empty starts a scratch buffer.
	Path string

	// Config holds the loaded settings.
	Config config.Config

	// ConfigPath is watched and reloaded on change. Empty disables reloading.
	ConfigPath string

	// Logger receives application logs. Defaults to GetLogger().
	Logger *Logger
}

// New creates a new Application with the given options.
// A file that cannot be loaded is a fatal error.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		cfg:       opts.Config,
		logger:    opts.Logger,
		metrics:   NewMetrics(),
		sessionID: uuid.NewString(),
		mode:      ModeNormal,
		events:    make(chan backend.Event, 16),
		reloads:   make(chan watcher.Event, 1),
		done:      make(chan struct{}),
	}
	if app.logger == nil {
		app.logger = GetLogger()
	}
	app.logger = app.logger.WithField("session", app.sessionID[:8])

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	log := app.logger.WithComponent("app")

	// 1. Buffer
	if app.opts.Path == "" {
		app.buf = buffer.New(viewport.Size{})
		log.Info("started with scratch buffer")
	} else {
		path, err := filepath.Abs(app.opts.Path)
		if err != nil {
			return &InitError{Component: "buffer", Err: err}
		}
		b, err := buffer.Load(path, viewport.Size{})
		if err != nil {
			return &InitError{Component: "buffer", Err: err}
		}
		app.buf = b
		log.Info("loaded %s (%d lines)", path, b.LineCount())
	}

	// 2. Position memory
	app.openPositions()
	app.restorePosition()

	// 3. Scripting
	state, err := lua.NewState(lua.WithOutput(&logWriter{logger: app.logger.WithComponent("lua")}))
	if err != nil {
		return &InitError{Component: "lua", Err: err}
	}
	lua.RegisterEditor(state, app)
	app.lua = state

	// 4. Config watcher
	if app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath, watcher.WithErrorHandler(func(err error) {
			app.logger.WithComponent("config").Warn("watcher: %v", err)
		}))
		if err != nil {
			// Reloading is optional; editing works without it.
			log.Warn("config watcher disabled: %v", err)
		} else {
			w.OnChange(app.queueReload)
			app.watcher = w
		}
	}

	// 5. Init script
	app.runInitScript()

	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the user quits
// or the terminal goes away. The terminal is restored on every exit path and
// the application's resources are released afterwards.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.Close()

	err := backend.Session(app.backend, func() error {
		app.renderer = renderer.New(app.backend, renderer.WithStatusLine(app.cfg.UI.StatusLine))
		app.buf.Resize(app.renderer.TextArea())

		if app.watcher != nil {
			if err := app.watcher.Start(); err != nil {
				app.logger.WithComponent("config").Warn("watcher start: %v", err)
			}
		}

		go app.pollEvents()

		app.render()
		return app.eventLoop()
	})
	if err != nil {
		app.logger.Error("run: %v", err)
	}
	return err
}

// pollEvents forwards backend events to the loop until the backend closes.
func (app *Application) pollEvents() {
	for {
		ev := app.backend.PollEvent()
		select {
		case app.events <- ev:
		case <-app.done:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// queueReload is the watcher callback. It runs on the watcher goroutine, so
// it only signals the loop. One pending reload is enough.
func (app *Application) queueReload(ev watcher.Event) {
	select {
	case app.reloads <- ev:
	default:
	}
}

// eventLoop is the main application loop.
func (app *Application) eventLoop() error {
	for {
		select {
		case <-app.done:
			return nil

		case ev := <-app.events:
			if err := app.handleBackendEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Info("quit")
					return nil
				}
				return err
			}

		case ev := <-app.reloads:
			app.handleConfigChange(ev)
		}

		app.render()
	}
}

// render pushes the editor state into the status line and repaints.
func (app *Application) render() {
	if app.renderer == nil {
		return
	}

	status := app.renderer.StatusLine()
	c := app.buf.Cursor()
	status.SetMode(app.mode.String())
	status.SetFilename(app.buf.Path())
	status.SetModified(app.buf.IsModified())
	status.SetPosition(c.Y+1, c.X+1)
	status.SetTotalLines(app.buf.LineCount())
	status.SetCommandBuffer(string(app.cmdline))
	if app.message != "" {
		status.SetMessage(app.message, app.msgType)
	} else {
		status.ClearMessage()
	}

	start := time.Now()
	app.renderer.Render(app.buf.Display(), app.mode == ModeCommand)
	app.metrics.RecordRender(time.Since(start))
}

// Shutdown asks a running event loop to stop. Safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Close records the cursor position and releases the watcher and the Lua
// state. Run calls it on exit; callers that never run the loop must call it
// themselves.
func (app *Application) Close() {
	app.closeOnce.Do(func() {
		app.Shutdown()
		app.rememberPosition()

		if app.watcher != nil {
			app.watcher.Stop()
		}
		if app.lua != nil {
			if err := app.lua.Close(); err != nil {
				app.logger.WithComponent("lua").Warn("close: %v", err)
			}
		}

		app.logger.WithFields(app.metrics.Snapshot().Fields()).Info("session closed")
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Buffer returns the buffer being edited. It changes when another file is
// opened.
func (app *Application) Buffer() *buffer.TextBuffer {
	return app.buf
}

// Mode returns the current editing mode.
func (app *Application) Mode() Mode {
	return app.mode
}

// Config returns the active settings.
func (app *Application) Config() config.Config {
	return app.cfg
}

// SessionID identifies this editor process in the logs.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Message returns the status line message, if any.
func (app *Application) Message() (string, statusline.MessageType) {
	return app.message, app.msgType
}

// Notify shows an informational message on the status line.
func (app *Application) Notify(msg string) {
	app.message = msg
	app.msgType = statusline.MessageInfo
}

// notifyError shows err on the status line and logs it.
func (app *Application) notifyError(err error) {
	app.logger.Warn("%v", err)
	app.message = err.Error()
	app.msgType = statusline.MessageError
}

func (app *Application) clearMessage() {
	app.message = ""
	app.msgType = statusline.MessageNone
}

// logWriter adapts a Logger to io.Writer for script output.
type logWriter struct {
	logger *Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.logger.Info("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
