// Package session remembers cursor positions between editing sessions.
//
// Positions live in one JSON document keyed by absolute file path:
//
//	{"/home/me/notes.txt": {"row": 12, "col": 4}}
//
// Reads use gjson and updates use sjson, so the document is never decoded
// into Go structures as a whole.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keyline/internal/engine/cursor"
)

// Store reads and writes the positions document.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a store backed by the document at path. The file is created
// on the first Put.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the remembered position for file.
func (s *Store) Get(file string) (cursor.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return cursor.Position{}, false
	}

	entry := gjson.GetBytes(doc, escapeKey(file))
	if !entry.IsObject() {
		return cursor.Position{}, false
	}
	row, col := entry.Get("row"), entry.Get("col")
	if row.Type != gjson.Number || col.Type != gjson.Number {
		return cursor.Position{}, false
	}
	return cursor.Position{X: int(col.Int()), Y: int(row.Int())}, true
}

// Put records pos for file.
func (s *Store) Put(file string, pos cursor.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	raw := fmt.Sprintf(`{"row":%d,"col":%d}`, pos.Y, pos.X)
	doc, err = sjson.SetRawBytes(doc, escapeKey(file), []byte(raw))
	if err != nil {
		return fmt.Errorf("updating positions: %w", err)
	}
	return s.write(doc)
}

// Forget removes the entry for file.
func (s *Store) Forget(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if !gjson.GetBytes(doc, escapeKey(file)).Exists() {
		return nil
	}

	doc, err = sjson.DeleteBytes(doc, escapeKey(file))
	if err != nil {
		return fmt.Errorf("updating positions: %w", err)
	}
	return s.write(doc)
}

// Len returns the number of remembered files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return 0
	}
	n := 0
	gjson.ParseBytes(doc).ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

// read returns the document, or an empty object when the file is missing or
// does not hold a JSON object.
func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return []byte("{}"), nil
	}
	return data, nil
}

// write replaces the document through a temp file and rename.
func (s *Store) write(doc []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("writing positions: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing positions: %w", err)
	}
	return nil
}

// pathSpecial lists the characters gjson and sjson give meaning to in a path.
const pathSpecial = `\.*?|#@!=<>%:"`

// escapeKey turns a file path into a single-component gjson/sjson path.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(pathSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
