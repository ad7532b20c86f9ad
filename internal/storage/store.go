package storage

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/dreamware/clipd/internal/clipboard"
)

// ErrNotFound is returned when a clipboard doesn't exist in the store
var ErrNotFound = errors.New("clipboard not found")

// ErrExists is returned when creating a clipboard whose ID is already taken
var ErrExists = errors.New("clipboard already exists")

// Store defines the interface for clipboard persistence
// All implementations must be thread-safe for concurrent access
type Store interface {
	// Create inserts a new clipboard record
	// Returns ErrExists if the ID is already present
	Create(clip *clipboard.Clipboard) error

	// Get retrieves a clipboard by ID
	// Returns ErrNotFound if the clipboard doesn't exist
	Get(id string) (*clipboard.Clipboard, error)

	// Update replaces a clipboard's content and bumps updated_at
	// Returns the updated record, or ErrNotFound if the ID is unknown
	Update(id, content string) (*clipboard.Clipboard, error)

	// Delete removes a clipboard
	// No error if the clipboard doesn't exist
	Delete(id string) error

	// List returns summaries of all clipboards, most recently updated first
	List() ([]clipboard.Summary, error)

	// Stats returns storage statistics
	Stats() (StoreStats, error)

	// Close releases any resources held by the store
	Close() error
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Clips int // Number of clipboards
	Bytes int // Total size of all content in bytes
}

// MemoryStore implements Store with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu    sync.RWMutex
	clips map[string]*clipboard.Clipboard
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clips: make(map[string]*clipboard.Clipboard),
	}
}

// Create inserts a new clipboard record
// Stores a copy to prevent external modification
func (m *MemoryStore) Create(clip *clipboard.Clipboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clips[clip.ID]; exists {
		return ErrExists
	}
	m.clips[clip.ID] = clip.Clone()
	return nil
}

// Get retrieves a clipboard by ID
// Returns a copy to prevent external modification
func (m *MemoryStore) Get(id string) (*clipboard.Clipboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clip, exists := m.clips[id]
	if !exists {
		return nil, ErrNotFound
	}
	return clip.Clone(), nil
}

// Update replaces a clipboard's content and bumps updated_at
func (m *MemoryStore) Update(id, content string) (*clipboard.Clipboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clip, exists := m.clips[id]
	if !exists {
		return nil, ErrNotFound
	}

	clip.Content = content
	clip.UpdatedAt = time.Now().UTC()

	// Clock skew guard: updated_at never trails created_at
	if clip.UpdatedAt.Before(clip.CreatedAt) {
		clip.UpdatedAt = clip.CreatedAt
	}
	return clip.Clone(), nil
}

// Delete removes a clipboard
// No error if the clipboard doesn't exist (idempotent)
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clips, id)
	return nil
}

// List returns summaries of all clipboards, most recently updated first
func (m *MemoryStore) List() ([]clipboard.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]clipboard.Summary, 0, len(m.clips))
	for _, clip := range m.clips {
		summaries = append(summaries, clip.Summary())
	}

	slices.SortFunc(summaries, func(a, b clipboard.Summary) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return summaries, nil
}

// Stats returns storage statistics
func (m *MemoryStore) Stats() (StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totalBytes := 0
	for _, clip := range m.clips {
		totalBytes += len(clip.Content)
	}

	return StoreStats{
		Clips: len(m.clips),
		Bytes: totalBytes,
	}, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}
