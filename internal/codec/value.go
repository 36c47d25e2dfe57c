package codec

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnsupportedType is returned when a Go value outside the six
	// supported primitive types is handed to the codec.
	ErrUnsupportedType = errors.New("codec: unsupported value type")

	// ErrMalformedValue is returned when persisted text cannot be parsed
	// under its recorded tag, or when a tag code is unknown. It indicates
	// backing-medium corruption or a cross-version mismatch and is never
	// silently defaulted.
	ErrMalformedValue = errors.New("codec: malformed persisted value")

	// ErrTypeMismatch is returned when a value is read as a type other
	// than the one it was stored as.
	ErrTypeMismatch = errors.New("codec: type mismatch")
)

// Tag identifies which of the six supported primitive types a value was
// stored as. The code is a single character and is persisted verbatim in the
// types sequence.
type Tag string

const (
	// TagBool marks a boolean value.
	TagBool Tag = "b"
	// TagInt32 marks a 32-bit signed integer value.
	TagInt32 Tag = "i"
	// TagInt64 marks a 64-bit signed integer value.
	TagInt64 Tag = "l"
	// TagFloat32 marks a single-precision float value.
	TagFloat32 Tag = "f"
	// TagFloat64 marks a double-precision float value.
	TagFloat64 Tag = "d"
	// TagString marks a text value.
	TagString Tag = "s"
)

// ParseTag validates a persisted tag code.
// Unknown codes fail with ErrMalformedValue since they can only come from a
// corrupted or newer-format types sequence.
func ParseTag(code string) (Tag, error) {
	switch t := Tag(code); t {
	case TagBool, TagInt32, TagInt64, TagFloat32, TagFloat64, TagString:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown type tag %q", ErrMalformedValue, code)
	}
}

// Value is a tagged union over the six supported primitive types.
//
// The tag is chosen by the typed constructor at the call site, so nothing on
// the read/write path inspects runtime types. The zero Value has an empty
// tag and is not valid for persistence.
type Value struct {
	// tag records which variant is populated. Immutable after construction.
	tag Tag

	// b holds the payload for TagBool.
	b bool

	// i holds the payload for TagInt32 and TagInt64 (int32 widened).
	i int64

	// f holds the payload for TagFloat32 and TagFloat64 (float32 widened).
	f float64

	// s holds the payload for TagString.
	s string
}

// BoolValue constructs a TagBool Value.
func BoolValue(v bool) Value { return Value{tag: TagBool, b: v} }

// Int32Value constructs a TagInt32 Value.
func Int32Value(v int32) Value { return Value{tag: TagInt32, i: int64(v)} }

// Int64Value constructs a TagInt64 Value.
func Int64Value(v int64) Value { return Value{tag: TagInt64, i: v} }

// Float32Value constructs a TagFloat32 Value.
func Float32Value(v float32) Value { return Value{tag: TagFloat32, f: float64(v)} }

// Float64Value constructs a TagFloat64 Value.
func Float64Value(v float64) Value { return Value{tag: TagFloat64, f: v} }

// StringValue constructs a TagString Value.
func StringValue(v string) Value { return Value{tag: TagString, s: v} }

// Tag returns the variant marker of the value.
func (v Value) Tag() Tag { return v.tag }

// Bool returns the boolean payload, or ErrTypeMismatch if the value was
// stored as another type.
func (v Value) Bool() (bool, error) {
	if v.tag != TagBool {
		return false, mismatch(TagBool, v.tag)
	}
	return v.b, nil
}

// Int32 returns the int32 payload, or ErrTypeMismatch if the value was
// stored as another type.
func (v Value) Int32() (int32, error) {
	if v.tag != TagInt32 {
		return 0, mismatch(TagInt32, v.tag)
	}
	return int32(v.i), nil
}

// Int64 returns the int64 payload, or ErrTypeMismatch if the value was
// stored as another type.
func (v Value) Int64() (int64, error) {
	if v.tag != TagInt64 {
		return 0, mismatch(TagInt64, v.tag)
	}
	return v.i, nil
}

// Float32 returns the float32 payload, or ErrTypeMismatch if the value was
// stored as another type.
func (v Value) Float32() (float32, error) {
	if v.tag != TagFloat32 {
		return 0, mismatch(TagFloat32, v.tag)
	}
	return float32(v.f), nil
}

// Float64 returns the float64 payload, or ErrTypeMismatch if the value was
// stored as another type.
func (v Value) Float64() (float64, error) {
	if v.tag != TagFloat64 {
		return 0, mismatch(TagFloat64, v.tag)
	}
	return v.f, nil
}

// Text returns the string payload, or ErrTypeMismatch if the value was
// stored as another type. Named Text rather than String so the signature
// does not shadow fmt.Stringer.
func (v Value) Text() (string, error) {
	if v.tag != TagString {
		return "", mismatch(TagString, v.tag)
	}
	return v.s, nil
}

func mismatch(want, got Tag) error {
	return fmt.Errorf("%w: requested %q, stored %q", ErrTypeMismatch, want, got)
}

// TagOf infers the tag for a native Go value. It backs the generic
// convenience setter only; typed setters never go through it.
//
// Plain int is accepted as int64 so that untyped constants work with the
// generic path. Everything else outside the six supported types fails with
// ErrUnsupportedType.
func TagOf(v any) (Tag, error) {
	switch v.(type) {
	case bool:
		return TagBool, nil
	case int32:
		return TagInt32, nil
	case int64, int:
		return TagInt64, nil
	case float32:
		return TagFloat32, nil
	case float64:
		return TagFloat64, nil
	case string:
		return TagString, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// FromNative wraps a native Go value into a Value, dispatching on its
// runtime type. Returns ErrUnsupportedType for anything TagOf rejects.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case bool:
		return BoolValue(x), nil
	case int32:
		return Int32Value(x), nil
	case int64:
		return Int64Value(x), nil
	case int:
		return Int64Value(int64(x)), nil
	case float32:
		return Float32Value(x), nil
	case float64:
		return Float64Value(x), nil
	case string:
		return StringValue(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// FormatValue renders a value as persisted text.
//
// Formatting is locale-independent strconv output:
//   - bool: "true" / "false"
//   - integers: base-10
//   - floats: shortest representation that round-trips at the stored
//     precision ('g', bit size 32 or 64)
//   - string: the payload verbatim (escaping happens later, in JoinFields)
func FormatValue(v Value) (string, error) {
	switch v.tag {
	case TagBool:
		return strconv.FormatBool(v.b), nil
	case TagInt32, TagInt64:
		return strconv.FormatInt(v.i, 10), nil
	case TagFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32), nil
	case TagFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case TagString:
		return v.s, nil
	default:
		return "", fmt.Errorf("%w: tag %q", ErrUnsupportedType, v.tag)
	}
}

// ParseValue parses persisted text under its recorded tag.
//
// Parsing failures surface as ErrMalformedValue: by the time text reaches
// ParseValue it was written by FormatValue under the same tag, so a parse
// error means the backing medium was corrupted or rewritten by something
// else.
func ParseValue(text string, tag Tag) (Value, error) {
	switch tag {
	case TagBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, malformed(text, tag, err)
		}
		return BoolValue(b), nil
	case TagInt32:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Value{}, malformed(text, tag, err)
		}
		return Int32Value(int32(i)), nil
	case TagInt64:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, malformed(text, tag, err)
		}
		return Int64Value(i), nil
	case TagFloat32:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return Value{}, malformed(text, tag, err)
		}
		return Float32Value(float32(f)), nil
	case TagFloat64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, malformed(text, tag, err)
		}
		return Float64Value(f), nil
	case TagString:
		return StringValue(text), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown type tag %q", ErrMalformedValue, tag)
	}
}

func malformed(text string, tag Tag, err error) error {
	return fmt.Errorf("%w: %q under tag %q: %v", ErrMalformedValue, text, tag, err)
}
