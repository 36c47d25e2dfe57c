package backing

import (
	"errors"
	"sync"
)

// ErrUnavailable is wrapped by every error a Backing returns, so callers can
// distinguish medium failures from data-level problems with errors.Is.
var ErrUnavailable = errors.New("backing medium unavailable")

// Backing is the durable key→string contract the namespace store writes
// through. Implementations must be safe for concurrent use; the namespace
// store itself is single-owner, but one Backing may serve many namespaces.
type Backing interface {
	// Load returns the text previously stored under field, or "" with a
	// nil error if the field was never stored.
	Load(field string) (string, error)

	// Store durably persists text under field.
	// Each call is atomic: a subsequent Load sees either the previous
	// text or the new text in full.
	Store(field, text string) error
}

// Memory implements Backing with in-process storage.
// Uses sync.RWMutex for thread-safe concurrent access.
type Memory struct {
	mu   sync.RWMutex      // Protects concurrent access
	data map[string]string // Field storage
}

// NewMemory creates an empty in-memory backing.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]string),
	}
}

// Load returns the stored text, or "" if the field was never stored.
func (m *Memory) Load(field string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data[field], nil
}

// Store records text under field. Strings are immutable, so no defensive
// copy is needed.
func (m *Memory) Store(field, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[field] = text
	return nil
}
