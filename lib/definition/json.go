// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import (
	"encoding/json"
)

// Dump renders a value as indented JSON with keys in tree order. It is
// used for the diagnostic dump of the cumulative tree when a run
// aborts, so the output must be stable and human-readable.
func Dump(v Value) []byte {
	out := appendJSON(nil, v, "  ", 0)
	return append(out, '\n')
}

// AppendJSON appends a JSON encoding of v to dst, using indent as the
// per-level indentation ("" produces compact output).
func AppendJSON(dst []byte, v Value, indent string) []byte {
	return appendJSON(dst, v, indent, 0)
}

func appendJSON(dst []byte, v Value, indent string, level int) []byte {
	switch value := v.(type) {
	case Scalar:
		return appendScalarJSON(dst, value)

	case Sequence:
		if len(value) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, element := range value {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewlineIndent(dst, indent, level+1)
			dst = appendJSON(dst, element, indent, level+1)
		}
		dst = appendNewlineIndent(dst, indent, level)
		return append(dst, ']')

	case *Tree:
		if value == nil || value.Len() == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, key := range value.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewlineIndent(dst, indent, level+1)
			dst = appendStringJSON(dst, key)
			dst = append(dst, ':')
			if indent != "" {
				dst = append(dst, ' ')
			}
			dst = appendJSON(dst, value.entries[key], indent, level+1)
		}
		dst = appendNewlineIndent(dst, indent, level)
		return append(dst, '}')

	default:
		return append(dst, "null"...)
	}
}

func appendScalarJSON(dst []byte, s Scalar) []byte {
	switch s.Kind {
	case KindString:
		return appendStringJSON(dst, s.Text)
	case KindNull:
		return append(dst, "null"...)
	default:
		// Int, float, and bool text is already valid JSON.
		return append(dst, s.Text...)
	}
}

// appendStringJSON encodes a string with JSON escaping. json.Marshal
// of a string cannot fail, so the error is discarded.
func appendStringJSON(dst []byte, s string) []byte {
	encoded, _ := json.Marshal(s)
	return append(dst, encoded...)
}

func appendNewlineIndent(dst []byte, indent string, level int) []byte {
	if indent == "" {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < level; i++ {
		dst = append(dst, indent...)
	}
	return dst
}
