package prefs

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dreamware/prefstore/internal/backing"
	"github.com/dreamware/prefstore/internal/codec"
)

// The three fixed field identifiers a namespace persists under its prefix.
// Nothing else is ever written to the backing medium.
const (
	fieldKeys   = "keys"
	fieldValues = "values"
	fieldTypes  = "types"
)

// fieldSanitizer replaces path-hazard characters in field identifiers so a
// fully-qualified field name is always a safe path component.
var fieldSanitizer = strings.NewReplacer(".", "_", "/", "_", `\`, "_")

// Namespace is an isolated group of typed key-value fields persisted as one
// unit under a derived prefix.
//
// State model:
//   - keys: the persisted key order, loaded eagerly at construction. The
//     values and types sequences are positionally parallel to it on the
//     backing medium and are re-loaded on demand, never cached as sequences.
//   - pending: the write buffer, key → native value, holding everything
//     changed since the last Save. A buffered key always wins on read.
//   - removed: keys dropped since the last Save. Removal is deferred: the
//     persisted sequences keep the key (and its positional slot) until the
//     next Save rewrites them.
//   - cache: decoded values of previously resolved persisted keys, consulted
//     after the buffer and invalidated by any mutation of the key.
//
// A Namespace assumes a single-threaded owner: no internal locking, every
// operation runs to completion on the calling goroutine.
type Namespace struct {
	// name is the caller-facing namespace identifier.
	name string

	// prefix is the derived backing-medium prefix for this namespace.
	// Fixed-length digest of the name; see namespacePrefix.
	prefix string

	// store is the backing medium all three fields are persisted through.
	store backing.Backing

	// log receives operation diagnostics. Never nil.
	log Logger

	// keys is the persisted key order. Indices into it are valid indices
	// into the persisted values and types sequences, which is why removal
	// only marks keys in removed instead of splicing this slice.
	keys []string

	// pending is the write buffer of unsaved native values.
	pending map[string]codec.Value

	// removed marks keys dropped since the last Save.
	removed map[string]bool

	// cache memoizes decoded persisted values while caching is enabled.
	cache map[string]codec.Value

	// caching gates cache population and cache hits. Disabling clears
	// the cache immediately; re-enabling repopulates lazily on reads.
	caching bool
}

// newNamespace constructs a namespace and eagerly loads its key sequence.
// The values and types sequences stay on the backing medium until a read or
// a save needs them.
func newNamespace(name string, store backing.Backing, log Logger) (*Namespace, error) {
	n := &Namespace{
		name:    name,
		prefix:  namespacePrefix(name),
		store:   store,
		log:     log,
		pending: make(map[string]codec.Value),
		removed: make(map[string]bool),
		cache:   make(map[string]codec.Value),
		caching: true,
	}

	text, err := store.Load(n.field(fieldKeys))
	if err != nil {
		return nil, fmt.Errorf("loading key index for namespace %q: %w", name, err)
	}
	n.keys = codec.SplitFields(text)

	log.Debug("namespace %q opened with %d persisted keys", name, len(n.keys))
	return n, nil
}

// Name returns the namespace identifier.
func (n *Namespace) Name() string { return n.name }

// field returns the fully-qualified backing-medium name for one of the three
// fixed fields: prefix + sanitized identifier.
func (n *Namespace) field(id string) string {
	return n.prefix + fieldSanitizer.Replace(id)
}

// Has reports whether key currently exists in the namespace: present in the
// pending buffer, or persisted and not removed since the last save.
func (n *Namespace) Has(key string) bool {
	if _, ok := n.pending[key]; ok {
		return true
	}
	if n.removed[key] {
		return false
	}
	return slices.Contains(n.keys, key)
}

// Keys returns the current key set in a deterministic order: persisted order
// first (minus removals), then unsaved new keys sorted. The slice is a copy.
func (n *Namespace) Keys() []string {
	out := make([]string, 0, len(n.keys)+len(n.pending))
	for _, k := range n.keys {
		if !n.removed[k] {
			out = append(out, k)
		}
	}

	var fresh []string
	for k := range n.pending {
		if !slices.Contains(n.keys, k) || n.removed[k] {
			fresh = append(fresh, k)
		}
	}
	slices.Sort(fresh)
	return append(out, fresh...)
}

// SetCachingEnabled toggles the read cache. Turning it off drops all cached
// values immediately; turning it on affects subsequent reads only, there is
// no eager repopulation.
func (n *Namespace) SetCachingEnabled(enabled bool) {
	if !enabled {
		n.cache = make(map[string]codec.Value)
	}
	n.caching = enabled
}

// CachingEnabled reports whether reads may be served from the cache.
func (n *Namespace) CachingEnabled() bool { return n.caching }

// GetBool resolves key as a boolean, returning def when the key is absent.
// A key stored as another type fails with ErrTypeMismatch.
func (n *Namespace) GetBool(key string, def bool) (bool, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Bool()
}

// GetInt32 resolves key as an int32, returning def when the key is absent.
func (n *Namespace) GetInt32(key string, def int32) (int32, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Int32()
}

// GetInt64 resolves key as an int64, returning def when the key is absent.
func (n *Namespace) GetInt64(key string, def int64) (int64, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Int64()
}

// GetFloat32 resolves key as a float32, returning def when the key is absent.
func (n *Namespace) GetFloat32(key string, def float32) (float32, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Float32()
}

// GetFloat64 resolves key as a float64, returning def when the key is absent.
func (n *Namespace) GetFloat64(key string, def float64) (float64, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Float64()
}

// GetString resolves key as text, returning def when the key is absent.
func (n *Namespace) GetString(key string, def string) (string, error) {
	v, ok, err := n.lookup(key)
	if err != nil || !ok {
		return def, err
	}
	return v.Text()
}

// SetBool buffers a boolean write. Nothing reaches the backing medium until
// Save.
func (n *Namespace) SetBool(key string, v bool) { n.put(key, codec.BoolValue(v)) }

// SetInt32 buffers an int32 write.
func (n *Namespace) SetInt32(key string, v int32) { n.put(key, codec.Int32Value(v)) }

// SetInt64 buffers an int64 write.
func (n *Namespace) SetInt64(key string, v int64) { n.put(key, codec.Int64Value(v)) }

// SetFloat32 buffers a float32 write.
func (n *Namespace) SetFloat32(key string, v float32) { n.put(key, codec.Float32Value(v)) }

// SetFloat64 buffers a float64 write.
func (n *Namespace) SetFloat64(key string, v float64) { n.put(key, codec.Float64Value(v)) }

// SetString buffers a text write.
func (n *Namespace) SetString(key string, v string) { n.put(key, codec.StringValue(v)) }

// Set buffers a write of any supported native value, dispatching on its
// runtime type. Values outside the six supported types fail with
// ErrUnsupportedType and leave the namespace untouched. The typed setters
// are the preferred path; Set exists for callers that only know the type at
// runtime.
func (n *Namespace) Set(key string, v any) error {
	val, err := codec.FromNative(v)
	if err != nil {
		n.log.Error("namespace %q: set %q: %v", n.name, key, err)
		return err
	}
	n.put(key, val)
	return nil
}

// put records a buffered write and drops any stale cache entry for the key.
func (n *Namespace) put(key string, v codec.Value) {
	n.pending[key] = v
	delete(n.cache, key)
	n.log.Debug("namespace %q: buffered %q (%s)", n.name, key, v.Tag())
}

// Remove drops key from the key list, the pending buffer and the cache.
//
// The persisted sequences are not rewritten here: the key's slot survives on
// the backing medium until the next Save. A namespace reloaded before that
// Save will still see the key. See the package documentation for the
// rationale behind this deferred consistency.
func (n *Namespace) Remove(key string) {
	delete(n.pending, key)
	delete(n.cache, key)
	if slices.Contains(n.keys, key) {
		n.removed[key] = true
	}
	n.log.Debug("namespace %q: removed %q", n.name, key)
}

// lookup resolves a key through the buffer, then the cache, then the
// persisted sequences. A miss everywhere returns found=false with no error;
// the caller substitutes its default. Only the persisted step touches the
// backing medium, and only for keys the in-memory index says exist.
func (n *Namespace) lookup(key string) (v codec.Value, found bool, err error) {
	if v, ok := n.pending[key]; ok {
		return v, true, nil
	}
	if n.removed[key] {
		return codec.Value{}, false, nil
	}
	if n.caching {
		if v, ok := n.cache[key]; ok {
			return v, true, nil
		}
	}

	idx := slices.Index(n.keys, key)
	if idx < 0 {
		return codec.Value{}, false, nil
	}

	v, err = n.resolvePersisted(key, idx)
	if err != nil {
		return codec.Value{}, false, err
	}
	if n.caching {
		n.cache[key] = v
	}
	return v, true, nil
}

// resolvePersisted loads the values and types sequences and decodes the
// entry at idx. The sequences are parsed fresh on every call; repeated reads
// of uncached keys deliberately pay this cost rather than holding both
// sequences in memory.
func (n *Namespace) resolvePersisted(key string, idx int) (codec.Value, error) {
	valuesText, err := n.store.Load(n.field(fieldValues))
	if err != nil {
		return codec.Value{}, fmt.Errorf("loading values for namespace %q: %w", n.name, err)
	}
	typesText, err := n.store.Load(n.field(fieldTypes))
	if err != nil {
		return codec.Value{}, fmt.Errorf("loading types for namespace %q: %w", n.name, err)
	}

	values := codec.SplitFields(valuesText)
	types := codec.SplitFields(typesText)
	if len(values) != len(n.keys) || len(types) != len(n.keys) {
		return codec.Value{}, fmt.Errorf(
			"%w: namespace %q sequences diverged (keys=%d values=%d types=%d)",
			codec.ErrMalformedValue, n.name, len(n.keys), len(values), len(types))
	}

	tag, err := codec.ParseTag(types[idx])
	if err != nil {
		return codec.Value{}, fmt.Errorf("namespace %q key %q: %w", n.name, key, err)
	}
	v, err := codec.ParseValue(values[idx], tag)
	if err != nil {
		return codec.Value{}, fmt.Errorf("namespace %q key %q: %w", n.name, key, err)
	}
	return v, nil
}

// Save merges the pending buffer into the persisted sequences and writes all
// three fields to the backing medium.
//
// With a clean namespace (empty buffer, no removals) and force false, Save
// returns immediately without touching the medium. Otherwise it rewrites the
// whole namespace: cost is O(total keys), not O(changed keys).
//
// Merge semantics:
//   - a buffered key that already has a persisted slot keeps its position
//   - removed keys lose their slot
//   - new keys are appended, sorted for deterministic output
//
// On a backing-medium failure the buffer, removal set and key index are left
// untouched so the caller can retry Save without losing pending writes. The
// medium itself holds whatever the adapter's per-call atomicity provides;
// there is no cross-field transaction, so a failure between field writes can
// leave the three sequences momentarily inconsistent (see package docs).
func (n *Namespace) Save(force bool) error {
	if len(n.pending) == 0 && len(n.removed) == 0 && !force {
		return nil
	}

	var oldValues, oldTypes []string
	if len(n.keys) > 0 {
		valuesText, err := n.store.Load(n.field(fieldValues))
		if err != nil {
			return fmt.Errorf("loading values for namespace %q: %w", n.name, err)
		}
		typesText, err := n.store.Load(n.field(fieldTypes))
		if err != nil {
			return fmt.Errorf("loading types for namespace %q: %w", n.name, err)
		}
		oldValues = codec.SplitFields(valuesText)
		oldTypes = codec.SplitFields(typesText)
		if len(oldValues) != len(n.keys) || len(oldTypes) != len(n.keys) {
			return fmt.Errorf(
				"%w: namespace %q sequences diverged (keys=%d values=%d types=%d)",
				codec.ErrMalformedValue, n.name, len(n.keys), len(oldValues), len(oldTypes))
		}
	}

	newKeys := make([]string, 0, len(n.keys)+len(n.pending))
	newValues := make([]string, 0, cap(newKeys))
	newTypes := make([]string, 0, cap(newKeys))

	appendEntry := func(key string, v codec.Value) error {
		text, err := codec.FormatValue(v)
		if err != nil {
			return fmt.Errorf("namespace %q key %q: %w", n.name, key, err)
		}
		newKeys = append(newKeys, key)
		newValues = append(newValues, text)
		newTypes = append(newTypes, string(v.Tag()))
		return nil
	}

	// Existing slots: replace in place from the buffer, drop removals,
	// carry everything else over verbatim.
	for i, key := range n.keys {
		if n.removed[key] {
			continue
		}
		if v, ok := n.pending[key]; ok {
			if err := appendEntry(key, v); err != nil {
				return err
			}
			continue
		}
		newKeys = append(newKeys, key)
		newValues = append(newValues, oldValues[i])
		newTypes = append(newTypes, oldTypes[i])
	}

	// New keys: everything buffered without a surviving persisted slot.
	var fresh []string
	for key := range n.pending {
		if !slices.Contains(n.keys, key) || n.removed[key] {
			fresh = append(fresh, key)
		}
	}
	slices.Sort(fresh)
	for _, key := range fresh {
		if err := appendEntry(key, n.pending[key]); err != nil {
			return err
		}
	}

	if err := n.store.Store(n.field(fieldKeys), codec.JoinFields(newKeys)); err != nil {
		return fmt.Errorf("saving key index for namespace %q: %w", n.name, err)
	}
	if err := n.store.Store(n.field(fieldValues), codec.JoinFields(newValues)); err != nil {
		return fmt.Errorf("saving values for namespace %q: %w", n.name, err)
	}
	if err := n.store.Store(n.field(fieldTypes), codec.JoinFields(newTypes)); err != nil {
		return fmt.Errorf("saving types for namespace %q: %w", n.name, err)
	}

	n.keys = newKeys
	n.pending = make(map[string]codec.Value)
	n.removed = make(map[string]bool)

	n.log.Info("namespace %q: saved %d keys", n.name, len(newKeys))
	return nil
}

// Clear empties the namespace in memory and immediately persists the empty
// state: key list, buffer, removal set and cache are all reset, then a
// forced Save writes the three empty sequences.
func (n *Namespace) Clear() error {
	n.keys = []string{}
	n.pending = make(map[string]codec.Value)
	n.removed = make(map[string]bool)
	n.cache = make(map[string]codec.Value)
	return n.Save(true)
}
