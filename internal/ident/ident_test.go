package ident

import (
	"strings"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := Generate()
		if len(id) != Length {
			t.Fatalf("len(%q)=%d want=%d", id, len(id), Length)
		}
		for _, c := range id {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("identifier %q contains %q, outside A-Z0-9", id, c)
			}
		}
	}
}

func TestGenerateDistinct(t *testing.T) {
	// 36^15 candidates; any duplicate in a few thousand draws means the
	// generator is broken, not unlucky.
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("duplicate identifier after %d draws: %q", i, id)
		}
		seen[id] = true
	}
}
