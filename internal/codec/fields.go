package codec

import "strings"

// Separator is the character that delimits elements inside a flattened
// sequence. It was chosen to keep persisted namespaces readable in a text
// editor; any occurrence inside a payload is escaped by EncodeField.
const Separator = ','

// escape is the escape character. A backslash inside a payload is doubled,
// and a separator inside a payload is preceded by one backslash.
const escape = '\\'

// EncodeField escapes a single element so it can be joined with Separator
// without ambiguity.
//
// The transformation:
//   - `\` becomes `\\`
//   - `,` becomes `\,`
//
// Backslashes must be escaped first; otherwise the backslash introduced for
// a separator would itself get doubled.
//
// Round-trip law: DecodeField(EncodeField(s)) == s for every string s, with
// no length restriction.
func EncodeField(s string) string {
	s = strings.ReplaceAll(s, string(escape), string(escape)+string(escape))
	s = strings.ReplaceAll(s, string(Separator), string(escape)+string(Separator))
	return s
}

// DecodeField reverses EncodeField.
//
// The unescape order is fixed: the two-character escaped separator is
// rewritten first, the doubled backslash second. Swapping the order turns
// `\\,` (an escaped backslash followed by what was an escaped separator)
// into the wrong payload.
//
// DecodeField must only be applied to a single element produced by
// SplitFields; decoding a whole joined sequence destroys the element
// boundaries.
func DecodeField(s string) string {
	s = strings.ReplaceAll(s, string(escape)+string(Separator), string(Separator))
	s = strings.ReplaceAll(s, string(escape)+string(escape), string(escape))
	return s
}

// JoinFields encodes every element and joins them with a single raw
// Separator. The raw separators introduced here are the only unescaped
// separators in the result, which is what makes SplitFields unambiguous.
//
// JoinFields(nil) and JoinFields([]string{}) both return "", the persisted
// form of an empty namespace.
func JoinFields(elems []string) string {
	if len(elems) == 0 {
		return ""
	}
	encoded := make([]string, len(elems))
	for i, e := range elems {
		encoded[i] = EncodeField(e)
	}
	return strings.Join(encoded, string(Separator))
}

// SplitFields splits a joined sequence on raw separators and decodes each
// element.
//
// A separator preceded by an odd run of backslashes belongs to the payload
// and is never a boundary, so the split walks the string tracking escape
// state rather than calling strings.Split. Splitting must happen before
// decoding; decoding first would erase the distinction between raw and
// escaped separators.
//
// SplitFields("") returns an empty slice, mirroring JoinFields, so that the
// three persisted sequences of an empty namespace all have length zero.
func SplitFields(s string) []string {
	if s == "" {
		return []string{}
	}

	var (
		elems   []string
		current strings.Builder
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			// Previous byte was a backslash: this byte is payload,
			// keep the escape sequence intact for DecodeField.
			current.WriteByte(c)
			escaped = false
		case c == escape:
			current.WriteByte(c)
			escaped = true
		case c == Separator:
			elems = append(elems, DecodeField(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	elems = append(elems, DecodeField(current.String()))
	return elems
}
