package hashcache

import "testing"

func TestDigestKeyShape(t *testing.T) {
	digest := DigestKey("user:1")
	if len(digest) != 64 {
		t.Fatalf("expected 64-char digest, got %d", len(digest))
	}
	for _, r := range digest {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("unexpected digest character %q", r)
		}
	}
}

func TestDigestKeyDeterministic(t *testing.T) {
	if DigestKey("alpha") != DigestKey("alpha") {
		t.Fatalf("expected identical digests for identical keys")
	}
	if DigestKey("alpha") == DigestKey("beta") {
		t.Fatalf("expected distinct digests for distinct keys")
	}
}
