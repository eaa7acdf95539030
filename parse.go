package json

import (
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sdkrystian/json/storage"
)

// Parse parses a complete JSON document and returns its root value. Trailing
// non-whitespace input is rejected.
func Parse(s string, opts ...ParseOption) (*Value, error) {
	return ParseBytes([]byte(s), opts...)
}

// ParseBytes parses a complete JSON document from data. The tree is bound to
// the handle given via WithStorage; string payloads reference storage
// obtained from it, never data itself, so data may be reused afterwards.
func ParseBytes(data []byte, opts ...ParseOption) (*Value, error) {
	po := parseOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&po)
	}
	p := &parser{data: data, sp: po.sp, maxDepth: po.maxDepth}
	p.skipSpace()
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return nil, p.errorf("unexpected data after document")
	}
	return v, nil
}

type parser struct {
	data     []byte
	pos      int
	sp       storage.Handle
	maxDepth int
	scratch  []byte // reused for unescaping
}

func (p *parser) errorf(reason string) error {
	return &SyntaxError{Offset: p.pos, Reason: reason}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue(depth int) (*Value, error) {
	if depth > p.maxDepth {
		return nil, p.errorf("nesting depth exceeds limit")
	}
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		v := &Value{sp: p.sp, kind: KindString, str: s}
		return v, nil
	case c == 't':
		if err := p.literal("true"); err != nil {
			return nil, err
		}
		return BoolValue(true, p.sp), nil
	case c == 'f':
		if err := p.literal("false"); err != nil {
			return nil, err
		}
		return BoolValue(false, p.sp), nil
	case c == 'n':
		if err := p.literal("null"); err != nil {
			return nil, err
		}
		return NullValue(p.sp), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected character")
	}
}

func (p *parser) literal(lit string) error {
	if len(p.data)-p.pos < len(lit) || string(p.data[p.pos:p.pos+len(lit)]) != lit {
		return p.errorf("invalid literal")
	}
	p.pos += len(lit)
	return nil
}

func (p *parser) parseObject(depth int) (*Value, error) {
	p.pos++ // '{'
	obj := NewObject(p.sp)
	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		return &Value{sp: p.sp, kind: KindObject, obj: obj}, nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.data) || p.data[p.pos] != '"' {
			return nil, p.errorf("expected object key")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.data) || p.data[p.pos] != ':' {
			return nil, p.errorf("expected ':' after object key")
		}
		p.pos++
		p.skipSpace()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		// The first occurrence of a duplicate key wins.
		if !obj.Contains(key.String()) {
			obj.members = append(obj.members, Member{Key: key, Value: *v})
			if obj.index != nil {
				obj.index[key.String()] = len(obj.members) - 1
			}
		}
		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unterminated object")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return &Value{sp: p.sp, kind: KindObject, obj: obj}, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray(depth int) (*Value, error) {
	p.pos++ // '['
	arr := NewArray(p.sp)
	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		return &Value{sp: p.sp, kind: KindArray, arr: arr}, nil
	}
	for {
		p.skipSpace()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		arr.elems = append(arr.elems, *v)
		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unterminated array")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return &Value{sp: p.sp, kind: KindArray, arr: arr}, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

// parseString consumes a quoted string and returns its unescaped contents as
// an arena-backed String on the parser's handle.
func (p *parser) parseString() (*String, error) {
	p.pos++ // '"'
	start := p.pos

	// Fast path: no escapes, no control bytes.
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '"' {
			seg := p.data[start:p.pos]
			if !utf8.Valid(seg) {
				return nil, p.errorf("invalid UTF-8 in string")
			}
			p.pos++
			return NewStringFromBytes(seg, p.sp)
		}
		if c == '\\' || c < 0x20 {
			break
		}
		p.pos++
	}
	if p.pos >= len(p.data) {
		return nil, p.errorf("unterminated string")
	}
	if p.data[p.pos] < 0x20 && p.data[p.pos] != '\\' {
		return nil, p.errorf("unescaped control character in string")
	}

	// Slow path: unescape into the scratch buffer.
	p.scratch = append(p.scratch[:0], p.data[start:p.pos]...)
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch {
		case c == '"':
			if !utf8.Valid(p.scratch) {
				return nil, p.errorf("invalid UTF-8 in string")
			}
			p.pos++
			return NewStringFromBytes(p.scratch, p.sp)
		case c == '\\':
			p.pos++
			if p.pos >= len(p.data) {
				return nil, p.errorf("unterminated escape sequence")
			}
			switch esc := p.data[p.pos]; esc {
			case '"', '\\', '/':
				p.scratch = append(p.scratch, esc)
				p.pos++
			case 'b':
				p.scratch = append(p.scratch, '\b')
				p.pos++
			case 'f':
				p.scratch = append(p.scratch, '\f')
				p.pos++
			case 'n':
				p.scratch = append(p.scratch, '\n')
				p.pos++
			case 'r':
				p.scratch = append(p.scratch, '\r')
				p.pos++
			case 't':
				p.scratch = append(p.scratch, '\t')
				p.pos++
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return nil, err
				}
				p.scratch = utf8.AppendRune(p.scratch, r)
			default:
				return nil, p.errorf("invalid escape sequence")
			}
		case c < 0x20:
			return nil, p.errorf("unescaped control character in string")
		default:
			p.scratch = append(p.scratch, c)
			p.pos++
		}
	}
	return nil, p.errorf("unterminated string")
}

// parseUnicodeEscape decodes \uXXXX at the current position (pointing at the
// 'u'), combining surrogate pairs.
func (p *parser) parseUnicodeEscape() (rune, error) {
	r1, err := p.hex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	// A high surrogate must be followed by \u and a low surrogate.
	if p.pos+1 < len(p.data) && p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
		save := p.pos
		p.pos++ // '\'
		r2, err := p.hex4()
		if err != nil {
			return 0, err
		}
		if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
			return r, nil
		}
		p.pos = save
	}
	return utf8.RuneError, nil
}

// hex4 consumes 'uXXXX' with the cursor on the 'u'.
func (p *parser) hex4() (rune, error) {
	if p.pos+4 >= len(p.data) {
		return 0, p.errorf("truncated unicode escape")
	}
	var r rune
	for _, c := range p.data[p.pos+1 : p.pos+5] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, p.errorf("invalid unicode escape")
		}
	}
	p.pos += 5
	return r, nil
}

// parseNumber consumes a number token. Integers without fraction or exponent
// become KindInt64 when they fit, non-negative ones overflowing int64 become
// KindUint64, and everything else becomes KindDouble.
func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	integral := true

	if p.data[p.pos] == '-' {
		p.pos++
	}
	switch {
	case p.pos >= len(p.data):
		return nil, p.errorf("truncated number")
	case p.data[p.pos] == '0':
		p.pos++
	case p.data[p.pos] >= '1' && p.data[p.pos] <= '9':
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
	default:
		return nil, p.errorf("invalid number")
	}
	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		integral = false
		p.pos++
		if p.pos >= len(p.data) || !isDigit(p.data[p.pos]) {
			return nil, p.errorf("missing digits after decimal point")
		}
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
	}
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		integral = false
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if p.pos >= len(p.data) || !isDigit(p.data[p.pos]) {
			return nil, p.errorf("missing exponent digits")
		}
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
	}

	tok := string(p.data[start:p.pos])
	if integral {
		if tok[0] == '-' {
			if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
				return Int64Value(n, p.sp), nil
			}
		} else {
			if n, err := strconv.ParseUint(tok, 10, 64); err == nil {
				if n <= math.MaxInt64 {
					return Int64Value(int64(n), p.sp), nil
				}
				return Uint64Value(n, p.sp), nil
			}
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, p.errorf("invalid number")
	}
	return DoubleValue(f, p.sp), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
