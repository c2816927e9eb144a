// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/stackchat-tui/internal/util"
)

// =============================================================================
// STORAGE INTERFACE
// =============================================================================

// ErrNotFound means the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Storage is a flat key/value blob store. Implementations must be safe
// for concurrent use.
type Storage interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}

// =============================================================================
// FILE STORAGE
// =============================================================================

// FileStorage keeps each key as a JSON file under a base directory.
// Writes are atomic: a replaced value is either the old bytes or the
// new bytes, never a torn mix.
type FileStorage struct {
	mu      sync.Mutex
	baseDir string
}

// NewFileStorage creates a store rooted at baseDir. The directory is
// created on first write, not here.
func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{baseDir: baseDir}
}

// Get implements Storage.
func (f *FileStorage) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set implements Storage.
func (f *FileStorage) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := util.AtomicWriteFile(f.path(key), value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.baseDir, key+".json")
}

// =============================================================================
// MEMORY STORAGE
// =============================================================================

// MemoryStorage is an in-memory Storage used by tests and by --ephemeral
// runs that should leave no files behind.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
