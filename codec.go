package hashcache

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecodeFailed is returned when stored bytes cannot be reconstituted,
// typically after a partial write corrupted an entry. The underlying cause
// is wrapped.
var ErrDecodeFailed = errors.New("hashcache: decode failed")

// Codec converts between a cached value and its stored representation.
// Both flags are construction-time configuration; encoder and decoder must
// agree on them, there is no self-describing header.
type Codec struct {
	// Compress applies zlib compression.
	Compress bool
	// Base64 applies a text-safe encoding as the outermost layer.
	Base64 bool
}

// Encode produces the stored byte form of value: compress first, then
// base64. With both flags off the value passes through untouched.
func (c Codec) Encode(value []byte) ([]byte, error) {
	out := value
	if c.Compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(out); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		out = buf.Bytes()
	}
	if c.Base64 {
		enc := make([]byte, base64.StdEncoding.EncodedLen(len(out)))
		base64.StdEncoding.Encode(enc, out)
		out = enc
	}
	return out, nil
}

// Decode reverses Encode. Any failure in either layer is surfaced as
// ErrDecodeFailed with the cause wrapped.
func (c Codec) Decode(stored []byte) ([]byte, error) {
	out := stored
	if c.Base64 {
		dec := make([]byte, base64.StdEncoding.DecodedLen(len(out)))
		n, err := base64.StdEncoding.Decode(dec, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		out = dec[:n]
	}
	if c.Compress {
		zr, err := zlib.NewReader(bytes.NewReader(out))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		out = plain
	}
	return out, nil
}

// identity reports whether the codec is a no-op.
func (c Codec) identity() bool {
	return !c.Compress && !c.Base64
}
