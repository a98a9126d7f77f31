package postgres

import (
	"strings"
	"testing"

	"github.com/payrail/payrail/internal/domain"
)

func TestReferenceGeneratorFormat(t *testing.T) {
	g := NewReferenceGenerator()

	ref, err := g.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ref) != domain.ReferenceLength {
		t.Fatalf("expected length %d, got %d", domain.ReferenceLength, len(ref))
	}

	for _, c := range ref {
		if !strings.ContainsRune(referenceCharset, c) {
			t.Fatalf("unexpected character %q in reference %q", c, ref)
		}
	}
}

func TestReferenceGeneratorUniqueness(t *testing.T) {
	g := NewReferenceGenerator()

	const n = 10000
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		ref, err := g.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[ref] {
			t.Fatalf("collision after %d references: %q", i, ref)
		}
		seen[ref] = true
	}
}
