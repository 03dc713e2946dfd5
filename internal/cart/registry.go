package cart

import (
	"fmt"
	"sync"

	"dreampos/internal/currency"
)

// Registry maps register (till) ids to their carts. Opening a register is
// explicit; reading a register that was never opened is a programming error
// and fails loudly via MustGet.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart

	newFormatter func() *currency.Formatter
}

func NewRegistry(newFormatter func() *currency.Formatter) *Registry {
	return &Registry{
		carts:        make(map[string]*Cart),
		newFormatter: newFormatter,
	}
}

// Open returns the register's cart, creating it on first use.
func (r *Registry) Open(id string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.carts[id]; ok {
		return c
	}
	c := New(r.newFormatter())
	r.carts[id] = c
	return c
}

// Get returns the register's cart if the register has been opened.
func (r *Registry) Get(id string) (*Cart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[id]
	return c, ok
}

// MustGet panics when the register was never opened. Misuse by a caller,
// not a user-data error.
func (r *Registry) MustGet(id string) *Cart {
	c, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("cart: register %q has no open cart", id))
	}
	return c
}

// Drop closes a register and discards its cart.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
}

// Each calls fn for every open register. Used to push promotion updates
// into live carts.
func (r *Registry) Each(fn func(id string, c *Cart)) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.carts))
	carts := make([]*Cart, 0, len(r.carts))
	for id, c := range r.carts {
		ids = append(ids, id)
		carts = append(carts, c)
	}
	r.mu.RUnlock()

	for i := range ids {
		fn(ids[i], carts[i])
	}
}
