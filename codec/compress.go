package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/sdkrystian/json"
	"github.com/sdkrystian/json/storage"
)

// Gzip compresses the text form with gzip. Slowest of the compressed codecs
// but readable by virtually everything.
type Gzip struct{}

// Encode implements Codec.
func (Gzip) Encode(v *json.Value) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(json.Serialize(v)); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements Codec.
func (Gzip) Decode(data []byte, sp storage.Handle) (*json.Value, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	return json.ParseBytes(text, json.WithStorage(sp))
}

// Name implements Codec.
func (Gzip) Name() string { return "gzip" }

// S2 compresses the text form with S2 block encoding. Best
// throughput-to-ratio trade-off for document snapshots.
type S2 struct{}

// Encode implements Codec.
func (S2) Encode(v *json.Value) ([]byte, error) {
	return s2.Encode(nil, json.Serialize(v)), nil
}

// Decode implements Codec.
func (S2) Decode(data []byte, sp storage.Handle) (*json.Value, error) {
	text, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decode: %w", err)
	}
	return json.ParseBytes(text, json.WithStorage(sp))
}

// Name implements Codec.
func (S2) Name() string { return "s2" }

// LZ4 compresses the text form with the LZ4 frame format.
type LZ4 struct{}

// Encode implements Codec.
func (LZ4) Encode(v *json.Value) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(json.Serialize(v)); err != nil {
		return nil, fmt.Errorf("lz4 encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("lz4 encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements Codec.
func (LZ4) Decode(data []byte, sp storage.Handle) (*json.Value, error) {
	text, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decode: %w", err)
	}
	return json.ParseBytes(text, json.WithStorage(sp))
}

// Name implements Codec.
func (LZ4) Name() string { return "lz4" }
