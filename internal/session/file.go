package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore writes save slots as JSON files under dir/<session>/<slot>.sav.
// The default for solo play; no server required.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(sessionID, slot string) string {
	return filepath.Join(f.dir, sessionID, slot+".sav")
}

func (f *FileStore) Put(_ context.Context, sessionID, slot string, blob []byte) error {
	path := f.path(sessionID, slot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	// Write-then-rename so a crash mid-write can't corrupt the slot.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("writing save slot %q: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing save slot %q: %w", slot, err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, sessionID, slot string) ([]byte, error) {
	blob, err := os.ReadFile(f.path(sessionID, slot))
	if os.IsNotExist(err) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save slot %q: %w", slot, err)
	}
	return blob, nil
}

func (f *FileStore) List(_ context.Context, sessionID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dir, sessionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing save slots: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sav") {
			names = append(names, strings.TrimSuffix(e.Name(), ".sav"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileStore) Close() error { return nil }
