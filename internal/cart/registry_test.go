package cart

import (
	"testing"

	"dreampos/internal/currency"
)

func newTestRegistry() *Registry {
	return NewRegistry(func() *currency.Formatter {
		return currency.NewFormatter(currency.USD, "en")
	})
}

func TestRegistryOpenIsIdempotent(t *testing.T) {
	r := newTestRegistry()

	first := r.Open("till-1")
	first.AddToCart(Product{ID: "latte", BasePrice: 400})

	second := r.Open("till-1")
	if second != first {
		t.Fatal("expected the same cart on reopen")
	}
	if second.Len() != 1 {
		t.Fatalf("expected existing state preserved, got %d lines", second.Len())
	}
}

func TestRegistryMustGetPanicsForUnopenedRegister(t *testing.T) {
	r := newTestRegistry()

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustGet to panic for an unopened register")
		}
	}()
	r.MustGet("till-99")
}

func TestRegistryDrop(t *testing.T) {
	r := newTestRegistry()
	r.Open("till-1")
	r.Drop("till-1")

	if _, ok := r.Get("till-1"); ok {
		t.Fatal("expected register to be gone after Drop")
	}
}

func TestRegistryEachVisitsOpenCarts(t *testing.T) {
	r := newTestRegistry()
	r.Open("till-1")
	r.Open("till-2")

	visited := map[string]bool{}
	r.Each(func(id string, c *Cart) {
		visited[id] = true
	})

	if !visited["till-1"] || !visited["till-2"] {
		t.Fatalf("expected both registers visited, got %v", visited)
	}
}
