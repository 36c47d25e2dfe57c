// Package prefs implements the namespace store and registry at the heart of
// prefstore: typed key-value fields grouped into independently persisted
// namespaces, with a write buffer in front of the medium and a read cache
// behind it.
//
// # Overview
//
//	┌─────────────────────────────────────┐
//	│              Registry               │
//	│      name → Namespace (lazy)        │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│             Namespace               │
//	│  pending buffer → cache → persisted │
//	└─────────────────────────────────────┘
//	        │                    │
//	        ▼                    ▼
//	┌──────────────┐    ┌──────────────┐
//	│    codec     │    │   backing    │
//	└──────────────┘    └──────────────┘
//
// A namespace persists as three positionally parallel sequences (keys,
// serialized values, type tags) flattened by the codec into three named
// text fields on the backing medium. The field names carry a fixed-length
// digest of the namespace name, so any number of namespaces share one
// medium without colliding.
//
// # Read and write discipline
//
// Typed setters never touch the medium: they land in the pending buffer,
// tag chosen at the call site, and invalidate the key's cache entry. Typed
// getters resolve buffer first, cache second (when enabled), persisted
// sequences last; a persisted hit re-loads and re-splits the values and
// types fields, decodes one entry, and memoizes it. A key absent from the
// in-memory key index is answered with the caller's default without any
// medium access beyond the index loaded at construction.
//
// Save merges the buffer into the persisted sequences, replacing slots in
// place, dropping removed keys and appending new ones, then rewrites all three
// fields as a unit. It is a whole-namespace rewrite, O(total keys). A clean
// namespace saves as a no-op unless forced.
//
// # Consistency notes
//
// Remove is deferred: the persisted slot survives until the next Save, so a
// namespace reloaded in between still sees the key. This mirrors the
// write-buffer model (unsaved Sets are equally invisible to a reloader) and
// keeps Remove free of I/O.
//
// Save writes the three fields in sequence with no cross-field transaction.
// Each individual write is atomic (the Dir backing renames into place), but
// a failure between writes can leave sequence lengths diverged on the
// medium. Reads detect that divergence and fail with ErrMalformedValue
// rather than guessing. The buffer is never cleared on a failed Save, so
// retrying is always safe.
//
// Concurrent multi-process access to one backing medium is unsupported:
// Save is a read-modify-write with no optimistic concurrency check.
//
// # Errors
//
// ErrUnsupportedType, ErrMalformedValue, ErrTypeMismatch and ErrUnavailable
// are re-exported here from their defining packages. Data-level errors are
// surfaced, never silently defaulted: masking a malformed value would turn
// corruption into quiet data loss at the next Save.
package prefs
