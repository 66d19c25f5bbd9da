package layouts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads layout files from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over any file system, such as an embed.FS.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadAll recursively loads every layout file. Invalid files are skipped.
// Returns layouts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Layout, error) {
	var all []Layout

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLayoutFile(path) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		all = append(all, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layouts: walking directory: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// LoadFile loads a single layout file relative to the loader root.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Layout{}, fmt.Errorf("layouts: reading %s: %w", path, err)
	}

	layout, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	layout.FilePath = path
	return layout, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}
	for _, layout := range all {
		if layout.ID == id {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("layouts: not found: %s", id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, layout := range all {
		ids[i] = layout.ID
	}
	return ids, nil
}

// LoadPath loads a layout file from disk by its full path.
func LoadPath(path string) (Layout, error) {
	layout, err := NewLoader(filepath.Dir(path)).LoadFile(filepath.Base(path))
	if err != nil {
		return Layout{}, err
	}
	layout.FilePath = path
	return layout, nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
