package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestStretchZeroRoundsIsSingleHash(t *testing.T) {
	sum := sha256.Sum256([]byte("alice@example.com"))
	want := hex.EncodeToString(sum[:])
	if got := Stretch("alice@example.com", 0); got != want {
		t.Fatalf("expected single hash %s, got %s", want, got)
	}
}

func TestStretchEmptyInput(t *testing.T) {
	sum := sha256.Sum256(nil)
	want := hex.EncodeToString(sum[:])
	if got := Stretch("", 0); got != want {
		t.Fatalf("expected hash of empty input %s, got %s", want, got)
	}
	if got := Stretch("", 100); len(got) != 64 {
		t.Fatalf("expected 64 hex chars for empty input, got %d", len(got))
	}
}

func TestStretchDeterministic(t *testing.T) {
	a := Stretch("a|b|c", 500)
	b := Stretch("a|b|c", 500)
	if a != b {
		t.Fatalf("same input and rounds produced %s and %s", a, b)
	}
}

func TestStretchChainsOnRawDigest(t *testing.T) {
	// Stretch(x, n) must equal one more raw-byte hash of Stretch(x, n-1).
	prev := Stretch("chain", 9)
	raw, err := hex.DecodeString(prev)
	if err != nil {
		t.Fatalf("decode prev digest: %v", err)
	}
	sum := sha256.Sum256(raw)
	if want, got := hex.EncodeToString(sum[:]), Stretch("chain", 10); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestStretchRoundsChangeOutput(t *testing.T) {
	base := Stretch("x", 0)
	for _, rounds := range []int{1, 2, 10, 1000} {
		if got := Stretch("x", rounds); got == base {
			t.Fatalf("rounds=%d collided with the single hash", rounds)
		}
	}
}

func TestStretchOutputShape(t *testing.T) {
	out := Stretch("Shape Check", 3)
	if len(out) != 64 {
		t.Fatalf("expected 64 chars, got %d", len(out))
	}
	for _, r := range out {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("unexpected character %q in digest %s", r, out)
		}
	}
}
