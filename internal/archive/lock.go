package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// locks holds one mutex per absolute archive path. Entries are never removed;
// a run touches a bounded set of archives.
var locks sync.Map

func lock(path string) func() {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	v, _ := locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

var pending struct {
	sync.Mutex
	paths []string
}

// removeTemp deletes a temporary archive. When deletion fails the path is
// kept for CleanupPending.
func removeTemp(name string) {
	err := os.Remove(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}

	pending.Lock()
	pending.paths = append(pending.paths, name)
	pending.Unlock()
}

// CleanupPending retries deletion of temporary files that could not be
// removed earlier. Call it once before the process exits.
func CleanupPending() error {
	pending.Lock()
	paths := pending.paths
	pending.paths = nil
	pending.Unlock()

	var errs []error

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}

	return errors.Join(errs...)
}
