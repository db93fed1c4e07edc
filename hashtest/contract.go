package hashtest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/goforj/hashcache/hashcore"
)

// Options configures shared store contract checks.
type Options struct {
	// CaseName is used to derive per-test digests. Defaults to t.Name().
	CaseName string
	// NullSemantics enables relaxed expectations for the null store.
	NullSemantics bool
	// SkipCloneCheck disables the "get returns a cloned value" assertion.
	SkipCloneCheck bool
	// SkipClear disables the clear assertion for shared backends where a
	// full clear would disturb neighbours.
	SkipClear bool
}

// Store is the minimal contract required by RunStoreContract.
type Store = hashcore.Store

// RunStoreContract runs a backend-agnostic store contract suite. Keys are
// synthetic digests derived from the case name, so concurrent suites on a
// shared backend stay disjoint.
func RunStoreContract(t *testing.T, store Store, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}
	digest := func(label string) string {
		sum := sha256.Sum256([]byte(caseName + ":" + label))
		return hex.EncodeToString(sum[:])
	}
	ctx := context.Background()

	// Set/Get round-trip.
	if err := store.Set(ctx, digest("alpha"), []byte("value")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	body, err := store.Get(ctx, digest("alpha"))
	if opts.NullSemantics {
		if !errors.Is(err, hashcore.ErrNotFound) {
			t.Fatalf("expected not found for null semantics, got %v", err)
		}
	} else {
		if err != nil || string(body) != "value" {
			t.Fatalf("unexpected get result: body=%q err=%v", string(body), err)
		}
		if !opts.SkipCloneCheck {
			body[0] = 'X'
			body2, err2 := store.Get(ctx, digest("alpha"))
			if err2 != nil || string(body2) != "value" {
				t.Fatalf("expected stored value unchanged, got body=%q err=%v", string(body2), err2)
			}
		}

		// Overwrite replaces content in full.
		if err := store.Set(ctx, digest("alpha"), []byte("v2")); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}
		body, err = store.Get(ctx, digest("alpha"))
		if err != nil || string(body) != "v2" {
			t.Fatalf("unexpected overwrite result: body=%q err=%v", string(body), err)
		}
	}

	// Absence: contains false and ErrNotFound for a key never set.
	ok, err := store.Contains(ctx, digest("missing"))
	if err != nil || ok {
		t.Fatalf("expected missing entry, ok=%v err=%v", ok, err)
	}
	if _, err := store.Get(ctx, digest("missing")); !errors.Is(err, hashcore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, digest("missing")); !errors.Is(err, hashcore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}

	if !opts.NullSemantics {
		ok, err = store.Contains(ctx, digest("alpha"))
		if err != nil || !ok {
			t.Fatalf("expected present entry, ok=%v err=%v", ok, err)
		}

		// Delete idempotence of effect.
		if err := store.Delete(ctx, digest("alpha")); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		ok, err = store.Contains(ctx, digest("alpha"))
		if err != nil || ok {
			t.Fatalf("expected entry gone after delete, ok=%v err=%v", ok, err)
		}
		if err := store.Delete(ctx, digest("alpha")); !errors.Is(err, hashcore.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}

		// Enumeration completeness: exactly the present digests, each once.
		want := map[string]bool{}
		for i := 0; i < 5; i++ {
			d := digest(fmt.Sprintf("enum-%d", i))
			if err := store.Set(ctx, d, []byte{byte(i)}); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			want[d] = true
		}
		if err := store.Delete(ctx, digest("enum-3")); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		delete(want, digest("enum-3"))

		seen := map[string]int{}
		for d, err := range store.Keys(ctx) {
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			seen[d]++
		}
		for d := range want {
			if seen[d] != 1 {
				t.Fatalf("expected digest %s exactly once, saw %d", d, seen[d])
			}
		}
		for d, n := range seen {
			if !want[d] && !opts.SkipClear {
				// With an exclusive backend the enumeration holds nothing else.
				t.Fatalf("unexpected digest %s (%d times)", d, n)
			}
		}

		if !opts.SkipClear {
			n, err := store.Len(ctx)
			if err != nil || n != len(want) {
				t.Fatalf("unexpected len: n=%d want=%d err=%v", n, len(want), err)
			}

			// Clear completeness.
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear failed: %v", err)
			}
			n, err = store.Len(ctx)
			if err != nil || n != 0 {
				t.Fatalf("expected empty store after clear, n=%d err=%v", n, err)
			}
			for d, err := range store.Keys(ctx) {
				if err != nil {
					t.Fatalf("keys after clear failed: %v", err)
				}
				t.Fatalf("unexpected digest after clear: %s", d)
			}
		} else {
			for d := range want {
				if err := store.Delete(ctx, d); err != nil {
					t.Fatalf("cleanup delete failed: %v", err)
				}
			}
		}
	}
}
