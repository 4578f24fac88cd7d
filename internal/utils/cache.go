package utils

import (
	"os"
	"sync"
	"time"
)

// stamp identifies one version of a file on disk.
type stamp struct {
	modTime time.Time
	size    int64
}

func statStamp(path string) (stamp, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}, false
	}
	return stamp{modTime: info.ModTime(), size: info.Size()}, true
}

type fileEntry[V any] struct {
	value V
	stamp stamp
}

// FileCache memoizes values derived from files. An entry is dropped as soon
// as the file it was derived from changes size or modification time.
type FileCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]fileEntry[V]
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{entries: make(map[string]fileEntry[V])}
}

// Get returns the cached value for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if current, ok := statStamp(path); ok && current == entry.stamp {
		return entry.value, true
	}

	c.Delete(path)
	return zero, false
}

// Put stores value for path together with the file's current stamp.
// Nothing is stored when the file cannot be stat'ed.
func (c *FileCache[V]) Put(path string, value V) {
	current, ok := statStamp(path)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = fileEntry[V]{value: value, stamp: current}
}

// Delete forgets path
func (c *FileCache[V]) Delete(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear forgets everything
func (c *FileCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]fileEntry[V])
}

// Len returns the number of cached files
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
