package json

import (
	"io"
	"math"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// Serialize renders v as compact JSON.
func Serialize(v *Value) []byte {
	return appendValue(nil, v)
}

// SerializeString renders v as a compact JSON string.
func SerializeString(v *Value) string {
	return string(appendValue(nil, v))
}

// SerializeIndent renders v as indented JSON, one member or element per
// line, nested levels indented by indent.
func SerializeIndent(v *Value, indent string) []byte {
	return appendValueIndent(nil, v, indent, 0)
}

// SerializeTo writes the compact form of v to w.
func SerializeTo(w io.Writer, v *Value) error {
	_, err := w.Write(appendValue(nil, v))
	return err
}

func appendValue(dst []byte, v *Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindInt64:
		return strconv.AppendInt(dst, v.i64, 10)
	case KindUint64:
		return strconv.AppendUint(dst, v.u64, 10)
	case KindDouble:
		return appendDouble(dst, v.f64)
	case KindString:
		return appendQuoted(dst, v.str.Bytes())
	case KindArray:
		dst = append(dst, '[')
		for i := range v.arr.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, &v.arr.elems[i])
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i := range v.obj.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, v.obj.members[i].Key.Bytes())
			dst = append(dst, ':')
			dst = appendValue(dst, &v.obj.members[i].Value)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

func appendValueIndent(dst []byte, v *Value, indent string, depth int) []byte {
	switch v.kind {
	case KindArray:
		if len(v.arr.elems) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[', '\n')
		for i := range v.arr.elems {
			if i > 0 {
				dst = append(dst, ',', '\n')
			}
			dst = appendIndent(dst, indent, depth+1)
			dst = appendValueIndent(dst, &v.arr.elems[i], indent, depth+1)
		}
		dst = append(dst, '\n')
		dst = appendIndent(dst, indent, depth)
		return append(dst, ']')
	case KindObject:
		if len(v.obj.members) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{', '\n')
		for i := range v.obj.members {
			if i > 0 {
				dst = append(dst, ',', '\n')
			}
			dst = appendIndent(dst, indent, depth+1)
			dst = appendQuoted(dst, v.obj.members[i].Key.Bytes())
			dst = append(dst, ':', ' ')
			dst = appendValueIndent(dst, &v.obj.members[i].Value, indent, depth+1)
		}
		dst = append(dst, '\n')
		dst = appendIndent(dst, indent, depth)
		return append(dst, '}')
	default:
		return appendValue(dst, v)
	}
}

func appendIndent(dst []byte, indent string, depth int) []byte {
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

// appendDouble renders f with the shortest representation that round-trips.
// Non-finite values have no JSON form and render as null.
func appendDouble(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}

// appendQuoted writes s as a quoted JSON string, escaping quotes,
// backslashes, and control characters. Valid UTF-8 passes through unescaped.
func appendQuoted(dst, s []byte) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
