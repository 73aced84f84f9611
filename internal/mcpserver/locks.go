package mcpserver

import (
	"path/filepath"
	"sync"
)

// pathLocks serializes fixes per file path. Two concurrent fix calls on
// the same file would race between the modification check and the
// atomic write; different files stay independent.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for path and returns its unlock function.
func (p *pathLocks) Lock(path string) func() {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	p.mu.Lock()
	lock, ok := p.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[key] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
