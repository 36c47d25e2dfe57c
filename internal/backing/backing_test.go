package backing

import (
	"fmt"
	"sync"
	"testing"
)

// TestMemory tests the in-memory backing implementation.
func TestMemory(t *testing.T) {
	t.Run("never-stored field loads as empty", func(t *testing.T) {
		m := NewMemory()

		text, err := m.Load("nonexistent")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if text != "" {
			t.Errorf("Expected empty string, got %q", text)
		}
	})

	t.Run("store and load", func(t *testing.T) {
		m := NewMemory()

		if err := m.Store("field1", "payload"); err != nil {
			t.Fatalf("Failed to store: %v", err)
		}

		text, err := m.Load("field1")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if text != "payload" {
			t.Errorf("Expected 'payload', got %q", text)
		}
	})

	t.Run("overwrite existing field", func(t *testing.T) {
		m := NewMemory()

		if err := m.Store("field1", "old"); err != nil {
			t.Fatalf("Failed to store initial text: %v", err)
		}
		if err := m.Store("field1", "new"); err != nil {
			t.Fatalf("Failed to overwrite: %v", err)
		}

		text, err := m.Load("field1")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if text != "new" {
			t.Errorf("Expected 'new', got %q", text)
		}
	})

	t.Run("empty string is a stored value", func(t *testing.T) {
		m := NewMemory()

		// Storing "" is indistinguishable from never-stored through
		// Load, matching the implementation-defined empty value the
		// contract allows.
		if err := m.Store("field1", ""); err != nil {
			t.Fatalf("Failed to store: %v", err)
		}

		text, err := m.Load("field1")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if text != "" {
			t.Errorf("Expected empty string, got %q", text)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		m := NewMemory()
		var wg sync.WaitGroup

		// Concurrent writers on distinct fields plus readers; the
		// race detector is the real assertion here.
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func(n int) {
				defer wg.Done()
				field := fmt.Sprintf("field-%d", n)
				for j := 0; j < 100; j++ {
					m.Store(field, fmt.Sprintf("text-%d", j))
				}
			}(i)
			go func(n int) {
				defer wg.Done()
				field := fmt.Sprintf("field-%d", n)
				for j := 0; j < 100; j++ {
					m.Load(field)
				}
			}(i)
		}
		wg.Wait()
	})
}

// TestCounting tests the instrumented wrapper.
func TestCounting(t *testing.T) {
	t.Run("counts loads and stores", func(t *testing.T) {
		c := NewCounting(NewMemory())

		c.Store("a", "1")
		c.Store("b", "2")
		c.Load("a")
		c.Load("a")
		c.Load("missing")

		if got := c.Stores(); got != 2 {
			t.Errorf("Expected 2 stores, got %d", got)
		}
		if got := c.Loads(); got != 3 {
			t.Errorf("Expected 3 loads, got %d", got)
		}
	})

	t.Run("forwards results", func(t *testing.T) {
		c := NewCounting(NewMemory())

		if err := c.Store("a", "payload"); err != nil {
			t.Fatalf("Failed to store: %v", err)
		}

		text, err := c.Load("a")
		if err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		if text != "payload" {
			t.Errorf("Expected 'payload', got %q", text)
		}
	})

	t.Run("reset zeroes counters", func(t *testing.T) {
		c := NewCounting(NewMemory())

		c.Store("a", "1")
		c.Load("a")
		c.Reset()

		if c.Loads() != 0 || c.Stores() != 0 {
			t.Errorf("Expected zeroed counters, got loads=%d stores=%d", c.Loads(), c.Stores())
		}
	})
}
