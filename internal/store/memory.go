package store

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

// ConfigStore holds the live dashboard configuration.
// Many readers (page renders) share it with a rare writer (admin saves).
type ConfigStore struct {
	mu           sync.RWMutex
	doc          *domain.Document // never mutated after publication
	revision     uint64           // bumped on every Replace
	lastReplaced time.Time        // zero until the first Replace
	loadedAt     time.Time        // when the boot document was installed
}

// NewConfigStore creates a store holding the document loaded at boot
func NewConfigStore(initial domain.Document) *ConfigStore {
	doc := initial.Clone()
	return &ConfigStore{
		doc:      &doc,
		loadedAt: time.Now(),
	}
}

// Read returns a consistent snapshot of the current document.
// The snapshot is a deep copy: callers may keep or modify it freely.
func (s *ConfigStore) Read() domain.Document {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	// Published documents are immutable, so the copy can run without the lock.
	return doc.Clone()
}

// Replace installs doc as the current document.
// The exclusive lock covers the swap only; persistence happens before this call.
func (s *ConfigStore) Replace(doc domain.Document) {
	next := doc.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = &next
	s.revision++
	s.lastReplaced = time.Now()
}

// Count returns the number of links in the current document
func (s *ConfigStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.doc.Links)
}

// Revision returns how many times the document has been replaced since boot
func (s *ConfigStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision
}

// LastReplaced returns the time of the last successful Replace (zero if none)
func (s *ConfigStore) LastReplaced() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastReplaced
}

// LoadedAt returns when the boot document was installed
func (s *ConfigStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadedAt
}
