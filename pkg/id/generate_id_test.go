package id

import (
	"regexp"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_Format(t *testing.T) {
	got := NewID32()
	if len(got) != 32 {
		t.Fatalf("length = %d, want 32", len(got))
	}
	if !reHex32.MatchString(got) {
		t.Fatalf("not lowercase hex: %q", got)
	}
}

func TestNewID32_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		v := NewID32()
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate id after %d draws: %s", i, v)
		}
		seen[v] = struct{}{}
	}
}
