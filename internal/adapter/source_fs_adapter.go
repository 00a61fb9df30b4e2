// Package adapter contains the infrastructure adapters of the hendrix CLI:
// input enumeration, class byte containers, mapping providers, config and
// report storage.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mouse-blink/hendrix/internal/archive"
	m "github.com/mouse-blink/hendrix/internal/model"
)

// SourceFSAdapter abstracts filesystem access so the workflow can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// Get expands roots into class byte suppliers. Directories are walked,
	// .class files are taken directly, and .jar/.zip archives yield one
	// supplier per .class member. process is reported by the suppliers'
	// ShouldBeProcessed.
	Get(roots []m.Path, process bool) ([]m.BytecodeSupplier, error)

	// Walk traverses root and every directory below it.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects suppliers for the provided roots. Duplicates are dropped.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, process bool) ([]m.BytecodeSupplier, error) {
	seen := make(map[string]struct{})

	var suppliers []m.BytecodeSupplier

	add := func(found []m.BytecodeSupplier) {
		for _, s := range found {
			key := s.Origin().String()
			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}
			suppliers = append(suppliers, s)
		}
	}

	for _, root := range roots {
		rootPath, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			found, err := a.processFilePath(rootPath, process)
			if err != nil {
				return nil, err
			}

			add(found)

			continue
		}

		err = a.Walk(m.Path(rootPath), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			found, err := a.processFilePath(path, process)
			if err != nil {
				return err
			}

			add(found)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return suppliers, nil
}

// Walk iterates over files under root, descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// normalizeRootPath expands "~", strips a trailing "/..." and makes the path
// absolute. Directories are always walked recursively.
func normalizeRootPath(root string) (string, error) {
	rootStr := strings.TrimSuffix(root, "/...")

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	return filepath.Abs(rootStr)
}

func isArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return true
	default:
		return false
	}
}

func (a *LocalSourceFSAdapter) processFilePath(path string, process bool) ([]m.BytecodeSupplier, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	switch {
	case filepath.Ext(absPath) == ".class":
		return []m.BytecodeSupplier{NewFileBytecode(m.Path(absPath), process)}, nil
	case isArchive(absPath):
		entries, err := archive.ListEntries(absPath)
		if err != nil {
			return nil, err
		}

		batch := NewArchiveBatch(m.Path(absPath))

		var suppliers []m.BytecodeSupplier

		for _, entry := range entries {
			if strings.HasSuffix(entry, ".class") {
				suppliers = append(suppliers, batch.Entry(entry, process))
			}
		}

		return suppliers, nil
	default:
		return nil, nil
	}
}
