// Package codec implements the wire format for prefstore namespaces: typed
// values rendered as text, and ordered field sequences flattened into a
// single escape-safe delimited string.
//
// # Overview
//
// A namespace persists as three parallel sequences (keys, values, types).
// Each sequence is stored as one string: elements are escaped, then joined
// with a separator character. The codec owns both halves of that contract:
//
//	┌─────────────────────────────────────┐
//	│          Namespace Store            │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│               codec                 │
//	│  Value ⇄ text   (Format/Parse)      │
//	│  []string ⇄ text (Join/Split)       │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│           Backing Adapter           │
//	└─────────────────────────────────────┘
//
// # Escaping
//
// EncodeField prefixes every backslash and every separator with a backslash,
// so a raw (unescaped) separator can only be an element boundary. DecodeField
// reverses it, unescaping the separator first and the backslash second; doing
// it in the other order corrupts payloads that end in a backslash. SplitFields
// never splits on an escaped separator, which is why it must run before any
// decoding.
//
// # Types
//
// Value is a tagged union over the six supported primitive types: bool,
// int32, int64, float32, float64, string. Typed constructors fix the tag at
// the call site; the only runtime type inspection in the package is TagOf,
// which backs the generic convenience setter.
//
// Numeric text uses strconv formatting exclusively, so parsing is
// locale-independent and round-trips exactly, including math.MinInt64,
// negative zero, and shortest-form floats.
//
// # Errors
//
// ErrUnsupportedType: a Go value outside the six supported types.
// ErrMalformedValue: persisted text that does not parse under its recorded
// tag, or an unknown tag code. Both indicate programmer error or backing
// medium corruption and are never silently defaulted.
package codec
