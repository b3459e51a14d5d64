package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keyline/internal/command"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/renderer/statusline"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestWriteCommand(t *testing.T) {
	path := writeFile(t, "w.txt", "abc\n")
	app := newTestApp(t, path, testConfig(t))

	if err := typeKeys(t, app, "iX\x1b:w\n"); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "Xabc\n" {
		t.Errorf("saved %q", got)
	}
	msg, kind := app.Message()
	if kind != statusline.MessageInfo || !strings.Contains(msg, "written") {
		t.Errorf("message = %q (%v)", msg, kind)
	}
}

func TestWriteAsCommand(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))
	target := filepath.Join(t.TempDir(), "new.txt")

	if err := typeKeys(t, app, "ihi\x1b:w "+target+"\n"); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, target); got != "hi" {
		t.Errorf("saved %q", got)
	}
	if app.Buffer().Path() != target {
		t.Errorf("path = %q, expected %q", app.Buffer().Path(), target)
	}
}

func TestWriteScratchWithoutPath(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))

	err := app.Execute(command.Command{Kind: command.Write})
	if !errors.Is(err, buffer.ErrNoAssociatedPath) {
		t.Fatalf("expected ErrNoAssociatedPath, got %v", err)
	}
	if !strings.Contains(err.Error(), ":w <path>") {
		t.Errorf("error should suggest a path: %v", err)
	}
}

func TestWriteFailureKeepsBuffer(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))
	if err := typeKeys(t, app, "idata\x1b"); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt")
	err := app.Execute(command.Command{Kind: command.Write, Arg: bad})

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" {
		t.Fatalf("expected save OperationError, got %v", err)
	}
	if !errors.Is(err, buffer.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if !app.Buffer().IsModified() || !app.Buffer().IsScratch() {
		t.Error("failed save changed buffer state")
	}
}

func TestQuit(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))

	if err := app.Execute(command.Command{Kind: command.Quit}); !errors.Is(err, ErrQuit) {
		t.Errorf("clean quit = %v, expected ErrQuit", err)
	}

	if err := typeKeys(t, app, "ix\x1b"); err != nil {
		t.Fatal(err)
	}
	if err := app.Execute(command.Command{Kind: command.Quit}); !errors.Is(err, ErrUnsavedChanges) {
		t.Errorf("modified quit = %v, expected ErrUnsavedChanges", err)
	}
	if err := app.Execute(command.Command{Kind: command.Quit, Force: true}); !errors.Is(err, ErrQuit) {
		t.Errorf("forced quit = %v, expected ErrQuit", err)
	}
}

func TestQuitFromCommandLine(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))

	if err := typeKeys(t, app, "ix\x1b:q\n"); err != nil {
		t.Fatalf(":q on a modified buffer should not quit: %v", err)
	}
	msg, kind := app.Message()
	if kind != statusline.MessageError || !strings.Contains(msg, "add ! to override") {
		t.Errorf("message = %q", msg)
	}

	if err := typeKeys(t, app, ":q!\n"); !errors.Is(err, ErrQuit) {
		t.Errorf(":q! = %v, expected ErrQuit", err)
	}
}

func TestWriteQuitFailureStays(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))

	if err := typeKeys(t, app, "ix\x1b:wq\n"); err != nil {
		t.Fatalf(":wq without a path should not quit: %v", err)
	}
	if _, kind := app.Message(); kind != statusline.MessageError {
		t.Error("expected an error message")
	}
}

func TestGotoCommand(t *testing.T) {
	app := newTestApp(t, writeFile(t, "g.txt", "a\nb\nc\nd\ne\n"), testConfig(t))

	tests := []struct {
		input string
		row   int
	}{
		{":3\n", 2},
		{":g 1\n", 0},
		{":goto 100\n", 4},
	}
	for _, tt := range tests {
		if err := typeKeys(t, app, tt.input); err != nil {
			t.Fatal(err)
		}
		assertCursor(t, app, 0, tt.row)
	}
}

func TestOpenCommand(t *testing.T) {
	cfg := testConfig(t)
	first := writeFile(t, "first.txt", "1\n2\n3\n")
	second := writeFile(t, "second.txt", "other\n")
	app := newTestApp(t, first, cfg)

	if err := typeKeys(t, app, "jj:o "+second+"\n"); err != nil {
		t.Fatal(err)
	}
	assertLines(t, app, "other")
	if app.Buffer().Path() != second {
		t.Errorf("path = %q, expected %q", app.Buffer().Path(), second)
	}

	// Reopening the first file restores where the cursor was left.
	if err := typeKeys(t, app, ":e "+first+"\n"); err != nil {
		t.Fatal(err)
	}
	assertLines(t, app, "1", "2", "3")
	assertCursor(t, app, 0, 2)
}

func TestOpenRefusesUnsavedChanges(t *testing.T) {
	other := writeFile(t, "other.txt", "other\n")
	app := newTestApp(t, "", testConfig(t))
	if err := typeKeys(t, app, "ix\x1b"); err != nil {
		t.Fatal(err)
	}

	err := app.Execute(command.Command{Kind: command.Edit, Arg: other})
	if !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	assertLines(t, app, "x")

	if err := app.Execute(command.Command{Kind: command.Edit, Arg: other, Force: true}); err != nil {
		t.Fatalf("forced open failed: %v", err)
	}
	assertLines(t, app, "other")
}

func TestOpenMissingKeepsBuffer(t *testing.T) {
	path := writeFile(t, "keep.txt", "keep\n")
	app := newTestApp(t, path, testConfig(t))

	err := app.Open(filepath.Join(t.TempDir(), "missing.txt"), false)
	if !errors.Is(err, buffer.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if app.Buffer().Path() != path {
		t.Errorf("buffer replaced after failed open")
	}
}

func TestChangeDirCommand(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir := t.TempDir()
	app := newTestApp(t, "", testConfig(t))
	if err := typeKeys(t, app, ":cd "+dir+"\n"); err != nil {
		t.Fatal(err)
	}

	got, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	if got != dir && got != resolved {
		t.Errorf("working directory = %q, expected %q", got, dir)
	}

	err = app.Execute(command.Command{Kind: command.ChangeDir, Arg: filepath.Join(dir, "missing")})
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "cd" {
		t.Errorf("expected cd OperationError, got %v", err)
	}
}

func TestSaveAfterChangeDirUsesAbsolutePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("rel.txt", []byte("rel\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, "rel.txt", testConfig(t))
	if err := app.ChangeDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if err := typeKeys(t, app, "A!\x1b:w\n"); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "rel.txt")); got != "rel!\n" {
		t.Errorf("saved %q", got)
	}
}

func TestLuaCommand(t *testing.T) {
	app := newTestApp(t, "", testConfig(t))

	if err := typeKeys(t, app, ":lua kl.insert('hi') kl.message('n=' .. kl.line_count())\n"); err != nil {
		t.Fatal(err)
	}
	assertLines(t, app, "hi")
	if msg, kind := app.Message(); msg != "n=1" || kind != statusline.MessageInfo {
		t.Errorf("message = %q (%v)", msg, kind)
	}

	if err := typeKeys(t, app, ":lua error('nope')\n"); err != nil {
		t.Fatal(err)
	}
	if msg, kind := app.Message(); kind != statusline.MessageError || !strings.Contains(msg, "nope") {
		t.Errorf("message = %q (%v)", msg, kind)
	}
}

func TestLuaSeesOpenedBuffer(t *testing.T) {
	other := writeFile(t, "lua.txt", "from file\n")
	app := newTestApp(t, "", testConfig(t))

	if err := app.Open(other, false); err != nil {
		t.Fatal(err)
	}
	if err := app.RunLua(`kl.message(kl.line(1))`); err != nil {
		t.Fatal(err)
	}
	if msg, _ := app.Message(); msg != "from file" {
		t.Errorf("message = %q", msg)
	}
}

func TestSaveRecordsPosition(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "rec.txt", "a\nbb\n")
	app := newTestApp(t, path, cfg)

	app.Buffer().MoveTo(cursor.Position{X: 2, Y: 1})
	if err := app.Save(""); err != nil {
		t.Fatal(err)
	}

	pos, ok := app.positions.Get(path)
	if !ok || pos != (cursor.Position{X: 2, Y: 1}) {
		t.Errorf("recorded %v (%v), expected (1:2)", pos, ok)
	}
}

func TestRestoredPositionIsClamped(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "clamp.txt", "a\nb\nc\nd\n")

	app := newTestApp(t, path, cfg)
	app.Buffer().MoveTo(cursor.Position{X: 1, Y: 3})
	app.Close()

	if err := os.WriteFile(path, []byte("short\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reopened := newTestApp(t, path, cfg)
	assertCursor(t, reopened, 1, 0)
}
