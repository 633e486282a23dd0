package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores each snapshot as one JSON file under a directory. This is
// the server-side stand-in for browser local storage: a snapshot per
// fixed name, rewritten whole on every Set.
type File struct {
	dir string
	mu  sync.Mutex
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(name string) string {
	// Storage names are fixed constants, but keep them filesystem-safe.
	safe := strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, safe+".json")
}

func (f *File) Get(_ context.Context, name string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot %q: %w", name, err)
	}
	return b, true, nil
}

func (f *File) Set(_ context.Context, name string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := f.path(name) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", name, err)
	}
	if err := os.Rename(tmp, f.path(name)); err != nil {
		return fmt.Errorf("failed to commit snapshot %q: %w", name, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	return nil
}
