package prefs

import (
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/dreamware/prefstore/internal/backing"
	"github.com/dreamware/prefstore/internal/codec"
)

// Error taxonomy, re-exported so callers only import this package.
var (
	// ErrUnsupportedType: a native value outside the six supported types
	// was passed to a setter.
	ErrUnsupportedType = codec.ErrUnsupportedType

	// ErrMalformedValue: persisted text does not parse under its recorded
	// tag, or the parallel sequences diverged. Indicates backing-medium
	// corruption.
	ErrMalformedValue = codec.ErrMalformedValue

	// ErrTypeMismatch: a key was read as a type other than the one it was
	// stored as.
	ErrTypeMismatch = codec.ErrTypeMismatch

	// ErrUnavailable: the backing medium failed. Pending writes survive a
	// failed Save, so the caller may retry.
	ErrUnavailable = backing.ErrUnavailable
)

// Registry maps namespace names to their Namespace instances, constructing
// each lazily on first lookup. It replaces a process-global singleton: tests
// and callers hold isolated registries and pass them explicitly.
//
// The registry map is mutex-guarded because lazy construction may be raced
// from multiple goroutines; the namespaces it hands out still assume a
// single-threaded owner each.
type Registry struct {
	// store is the backing medium shared by every namespace the registry
	// constructs. Namespaces never collide on it thanks to their derived
	// prefixes.
	store backing.Backing

	// log is handed to each constructed namespace. Never nil.
	log Logger

	// namespaces holds the instances constructed so far, keyed by name.
	// Instances live for the life of the registry; there is no teardown.
	namespaces map[string]*Namespace

	// mu protects namespaces during lazy construction.
	mu sync.Mutex
}

// Option customizes Registry behavior.
type Option func(*Registry)

// WithBacking specifies the backing medium.
// If not provided, backing.NewMemory() is used.
func WithBacking(b backing.Backing) Option {
	return func(r *Registry) {
		if b != nil {
			r.store = b
		}
	}
}

// WithLogger specifies a logger for operation logging.
// If not provided, a no-op logger is used (no logging).
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates an empty registry. Without options it stores into a
// fresh in-memory backing, which is what tests want; production callers pass
// WithBacking.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		store:      backing.NewMemory(),
		log:        defaultLogger,
		namespaces: make(map[string]*Namespace),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the instance for name, constructing and registering it
// on first lookup. Construction loads the namespace's key index from the
// backing medium, so it can fail with ErrUnavailable.
func (r *Registry) Namespace(name string) (*Namespace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.namespaces[name]; ok {
		return n, nil
	}

	n, err := newNamespace(name, r.store, r.log)
	if err != nil {
		return nil, err
	}
	r.namespaces[name] = n
	return n, nil
}

// namespacePrefix derives the backing-medium prefix for a namespace name: a
// fixed-length hex digest of "p_" + name, followed by an underscore.
//
// The digest keeps namespaces sharing one backing medium from colliding on
// field names regardless of what characters the name contains. MD5 is used
// purely for disambiguation, not security; names are not adversarial.
func namespacePrefix(name string) string {
	sum := md5.Sum([]byte("p_" + name))
	return hex.EncodeToString(sum[:]) + "_"
}
