package buffer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/engine/viewport"
)

// Load reads the file at path into a new buffer. The cursor starts at the
// origin and path becomes the associated path.
func Load(path string, size viewport.Size) (*TextBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	// Read all content first so CRLF pairs are never split across reads.
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	b := New(size)
	b.setContent(string(data))
	b.path = path
	return b, nil
}

// Save writes the buffer to its associated path.
// On failure the buffer is left untouched.
func (b *TextBuffer) Save() error {
	if b.path == "" {
		return ErrNoAssociatedPath
	}
	if err := writeFile(b.path, []byte(b.Text())); err != nil {
		return &IOError{Op: "write", Path: b.path, Err: err}
	}
	b.modified = false
	return nil
}

// SaveAs writes the buffer to path and makes it the associated path.
// The association only changes once the write succeeded.
func (b *TextBuffer) SaveAs(path string) error {
	if err := writeFile(path, []byte(b.Text())); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	b.path = path
	b.modified = false
	return nil
}

// writeFile replaces path with data through a uniquely named sibling temp
// file, keeping the existing file mode. Symlinks are written through.
func writeFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
