package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/keyline/internal/command"
	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/session"
)

// Execute runs a parsed command against the application.
// Returns ErrQuit when the command ends the session.
func (app *Application) Execute(cmd command.Command) error {
	switch cmd.Kind {
	case command.Write:
		return app.Save(cmd.Arg)

	case command.WriteQuit:
		if err := app.Save(cmd.Arg); err != nil {
			return err
		}
		return ErrQuit

	case command.Quit:
		return app.Quit(cmd.Force)

	case command.Edit:
		return app.Open(cmd.Arg, cmd.Force)

	case command.ChangeDir:
		return app.ChangeDir(cmd.Arg)

	case command.Goto:
		app.buf.Move(cursor.GotoLine(cmd.Line - 1))
		return nil

	case command.Lua:
		return app.RunLua(cmd.Arg)
	}

	return fmt.Errorf("%w: %s", command.ErrUnknownCommand, cmd.Kind)
}

// Save writes the buffer to its path, or to path when given. A scratch
// buffer needs a path.
func (app *Application) Save(path string) error {
	var err error
	if path == "" {
		err = app.buf.Save()
	} else {
		path, err = filepath.Abs(config.ExpandHome(path))
		if err == nil {
			err = app.buf.SaveAs(path)
		}
	}

	if err != nil {
		opErr := NewOperationError("save", path, err)
		if errors.Is(err, buffer.ErrNoAssociatedPath) {
			opErr = opErr.WithContext("use :w <path>")
		}
		return opErr
	}

	app.rememberPosition()
	app.logger.Info("saved %s", app.buf.Path())
	app.Notify(fmt.Sprintf("%q %dL written", filepath.Base(app.buf.Path()), app.buf.LineCount()))
	return nil
}

// Open replaces the buffer with a freshly loaded file. Unsaved changes are
// kept unless force is set. On failure the current buffer stays.
func (app *Application) Open(path string, force bool) error {
	if app.buf.IsModified() && !force {
		return NewOperationError("open", path, ErrUnsavedChanges).WithContext("add ! to override")
	}

	abs, err := filepath.Abs(config.ExpandHome(path))
	if err != nil {
		return NewOperationError("open", path, err)
	}

	b, err := buffer.Load(abs, app.buf.Viewport().Size())
	if err != nil {
		return NewOperationError("open", path, err)
	}

	app.rememberPosition()
	app.buf = b
	app.restorePosition()

	app.logger.Info("opened %s (%d lines)", abs, b.LineCount())
	app.Notify(fmt.Sprintf("%q %dL", filepath.Base(abs), b.LineCount()))
	return nil
}

// Quit ends the session. Unsaved changes block it unless force is set.
func (app *Application) Quit(force bool) error {
	if app.buf.IsModified() && !force {
		return NewOperationError("quit", "", ErrUnsavedChanges).WithContext("add ! to override")
	}
	return ErrQuit
}

// ChangeDir changes the process working directory. Buffer paths are
// absolute, so saves are unaffected.
func (app *Application) ChangeDir(path string) error {
	if err := os.Chdir(config.ExpandHome(path)); err != nil {
		return NewOperationError("cd", path, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return NewOperationError("cd", path, err)
	}
	app.Notify(wd)
	return nil
}

// RunLua runs a chunk of Lua against the buffer.
func (app *Application) RunLua(code string) error {
	if err := app.lua.DoString(code); err != nil {
		return NewOperationError("lua", "", err)
	}
	return nil
}

// runInitScript runs editor.init_script once. Failures are reported but do
// not stop the editor.
func (app *Application) runInitScript() {
	script := app.cfg.Editor.InitScript
	if script == "" {
		return
	}

	if err := app.lua.DoFile(script); err != nil {
		app.notifyError(NewOperationError("init script", script, err))
		return
	}
	app.logger.WithComponent("lua").Info("ran init script %s", script)
}

// applyConfig switches to cfg. Settings that size the screen take effect
// immediately; position memory is reopened when its file changed.
func (app *Application) applyConfig(cfg config.Config) {
	app.cfg = cfg
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	app.openPositions()

	if app.renderer != nil {
		app.renderer.SetStatusLineVisible(cfg.UI.StatusLine)
		app.buf.Resize(app.renderer.TextArea())
	}
}

// openPositions opens the position store named by the config, or drops it
// when position memory is disabled.
func (app *Application) openPositions() {
	ed := app.cfg.Editor
	if !ed.RememberPositions || ed.PositionsFile == "" {
		app.positions = nil
		return
	}
	if app.positions == nil || app.positions.Path() != ed.PositionsFile {
		app.positions = session.Open(ed.PositionsFile)
	}
}

// restorePosition moves the cursor to where it was when the file was last
// left. The stored position is clamped to the current content.
func (app *Application) restorePosition() {
	if app.positions == nil || app.buf.IsScratch() {
		return
	}
	if pos, ok := app.positions.Get(app.buf.Path()); ok {
		app.buf.MoveTo(pos)
	}
}

// rememberPosition records the cursor for the current file.
func (app *Application) rememberPosition() {
	if app.positions == nil || app.buf == nil || app.buf.IsScratch() {
		return
	}
	if err := app.positions.Put(app.buf.Path(), app.buf.Cursor()); err != nil {
		app.logger.WithComponent("session").Warn("record position: %v", err)
	}
}
