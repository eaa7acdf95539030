package json

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindNull represents the JSON null value.
	KindNull Kind = iota
	// KindBool represents a JSON boolean.
	KindBool
	// KindInt64 represents a JSON number stored as a signed 64-bit integer.
	KindInt64
	// KindUint64 represents a JSON number stored as an unsigned 64-bit integer.
	KindUint64
	// KindDouble represents a JSON number stored as a float64.
	KindDouble
	// KindString represents a JSON string.
	KindString
	// KindArray represents a JSON array.
	KindArray
	// KindObject represents a JSON object.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}
