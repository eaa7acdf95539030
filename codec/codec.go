// Package codec centralizes document encoding for persistence.
//
// A Codec turns a document into self-contained bytes and back. Codec
// selection is a breaking-change boundary: bytes produced by one codec only
// decode with the same codec, so formats that persist documents should store
// the codec name alongside the payload and resolve it with ByName.
package codec

import (
	"fmt"

	"github.com/sdkrystian/json"
	"github.com/sdkrystian/json/storage"
)

// Codec encodes and decodes documents.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode renders the document as self-contained bytes.
	Encode(v *json.Value) ([]byte, error)

	// Decode parses previously encoded bytes into a new document bound to
	// sp.
	Decode(data []byte, sp storage.Handle) (*json.Value, error)

	// Name returns the codec's stable name.
	Name() string
}

// Default is the codec used when none is specified.
var Default Codec = Text{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "text":
		return Text{}, true
	case "gzip":
		return Gzip{}, true
	case "s2":
		return S2{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Text is the identity codec: plain JSON text.
type Text struct{}

// Encode implements Codec.
func (Text) Encode(v *json.Value) ([]byte, error) {
	return json.Serialize(v), nil
}

// Decode implements Codec.
func (Text) Decode(data []byte, sp storage.Handle) (*json.Value, error) {
	return json.ParseBytes(data, json.WithStorage(sp))
}

// Name implements Codec.
func (Text) Name() string { return "text" }

// MustEncode is a helper for internal tests and benchmarks.
func MustEncode(c Codec, v *json.Value) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Encode(v)
	if err != nil {
		panic(fmt.Errorf("codec %s encode failed: %w", c.Name(), err))
	}
	return b
}
