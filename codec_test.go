package hashcache

import (
	"bytes"
	"errors"
	"testing"
)

func TestCodecRoundTripAllConfigurations(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("hello"),
		bytes.Repeat([]byte("abcdef"), 4096),
		{0x00, 0xff, 0x80, 0x7f},
	}
	codecs := []Codec{
		{},
		{Compress: true},
		{Base64: true},
		{Compress: true, Base64: true},
	}
	for _, codec := range codecs {
		for _, payload := range payloads {
			encoded, err := codec.Encode(payload)
			if err != nil {
				t.Fatalf("encode failed (compress=%v b64=%v): %v", codec.Compress, codec.Base64, err)
			}
			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("decode failed (compress=%v b64=%v): %v", codec.Compress, codec.Base64, err)
			}
			if !bytes.Equal(decoded, payload) {
				t.Fatalf("round trip mismatch (compress=%v b64=%v): %d vs %d bytes",
					codec.Compress, codec.Base64, len(decoded), len(payload))
			}
		}
	}
}

func TestCodecIdentityPassthrough(t *testing.T) {
	codec := Codec{}
	payload := []byte("untouched")
	encoded, err := codec.Encode(payload)
	if err != nil || !bytes.Equal(encoded, payload) {
		t.Fatalf("expected identity encode, got %q err=%v", encoded, err)
	}
}

func TestCodecDecodeFailedOnCorruptZlib(t *testing.T) {
	codec := Codec{Compress: true}
	if _, err := codec.Decode([]byte("not a zlib stream")); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestCodecDecodeFailedOnTruncated(t *testing.T) {
	codec := Codec{Compress: true}
	encoded, err := codec.Encode(bytes.Repeat([]byte("data"), 1024))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := codec.Decode(encoded[:len(encoded)/2]); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed on truncated payload, got %v", err)
	}
}

func TestCodecDecodeFailedOnInvalidBase64(t *testing.T) {
	codec := Codec{Base64: true}
	if _, err := codec.Decode([]byte("!!! not base64 !!!")); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}
