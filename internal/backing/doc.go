// Package backing defines the minimal durable-storage contract the
// namespace store writes through, and provides concrete adapters over memory
// and the filesystem.
//
// # Overview
//
// The namespace store persists exactly three named text fields per
// namespace. Everything it needs from a storage medium is a field-name to
// string mapping:
//
//	┌─────────────────────────────────────┐
//	│          Namespace Store            │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│          Backing Interface          │
//	│     Load(field) / Store(field)      │
//	└─────────────────────────────────────┘
//	                 │
//	        ┌────────┴────────┐
//	        ▼                 ▼
//	┌────────────┐     ┌────────────┐
//	│   Memory   │     │    Dir     │
//	└────────────┘     └────────────┘
//
// # Contract
//
// Load returns the text previously stored under a field name, or "" with a
// nil error if the field was never stored. Only real medium failures (I/O
// errors, permission problems) produce an error, and every such error wraps
// ErrUnavailable.
//
// Store must be atomic per call: a concurrent-in-time reader sees either the
// old text or the new text, never a partial write. Dir satisfies this with a
// temp-file write followed by os.Rename on the same filesystem. No atomicity
// is promised across multiple Store calls; the namespace store documents
// that gap at its level.
//
// # Implementations
//
// Memory: map-backed, guarded by an RWMutex. The default for registries
// constructed without options, and the workhorse for tests.
//
// Dir: one file per field name under a root directory. Field names are
// produced by the namespace store and contain only hex digits, underscores
// and the fixed field identifiers, so they are always safe path components.
//
// Counting: wraps any Backing and counts Load and Store calls. Both the
// package tests and the integration tests use it to observe cache-bypass
// and save-idempotence behavior.
package backing
