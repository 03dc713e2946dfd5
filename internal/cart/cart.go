package cart

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"dreampos/internal/currency"
)

const (
	// MaxQuantity caps a single line's quantity.
	MaxQuantity = 9999
	// MaxPayers is the capacity of the per-payer tip array for split
	// payments.
	MaxPayers = 50
)

// Cart is the state container for one register: line items keyed by
// product+variation identity, active promotions, an optional order-level
// discount, and tip state. Every mutation recomputes the Totals snapshot
// before returning, so reads are always consistent.
//
// Invalid input never errors: unknown keys and out-of-range indices are
// no-ops, overlarge quantities clamp. Callers validate user input before
// calling in.
type Cart struct {
	mu sync.Mutex

	formatter *currency.Formatter

	items map[Key]*Item
	order []Key // insertion order of keys

	promotions   Promotions
	cartDiscount *Discount

	tipAmount      Cents
	individualTips []Cents
	splitMode      bool

	paymentStarted bool

	nextItemID int64
	totals     Totals
}

// New builds a cart around a price formatter. Initial items, if any, are
// re-keyed through GenerateKey so duplicates collapse onto one line.
func New(formatter *currency.Formatter, initial ...Item) *Cart {
	c := &Cart{
		formatter:      formatter,
		items:          make(map[Key]*Item),
		promotions:     Promotions{},
		individualTips: make([]Cents, MaxPayers),
	}
	for _, it := range initial {
		key := GenerateKey(it.Product, it.SelectedVariations)
		if existing, ok := c.items[key]; ok {
			existing.Quantity += it.Quantity
			continue
		}
		c.nextItemID++
		it.ID = c.nextItemID
		if it.InstanceID == "" {
			it.InstanceID = uuid.NewString()
		}
		line := it
		c.items[key] = &line
		c.order = append(c.order, key)
	}
	c.recompute()
	return c
}

// AddToCart adds one unit of a product with the given variation selection.
// If the combination is already in the cart its quantity goes up by one;
// otherwise a new line is inserted. Returns the line's key.
func (c *Cart) AddToCart(product Product, variations ...Variation) Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := GenerateKey(product, variations)
	if it, ok := c.items[key]; ok {
		it.Quantity++
	} else {
		c.nextItemID++
		c.items[key] = &Item{
			ID:                 c.nextItemID,
			Product:            product,
			SelectedVariations: variations,
			Quantity:           1,
			InstanceID:         uuid.NewString(),
		}
		c.order = append(c.order, key)
	}
	c.recompute()
	return key
}

// UpdateQuantity adds delta to a line's quantity. Unknown keys are no-ops.
// A result at or below zero deletes the line; a result above MaxQuantity
// clamps to it. A delta that would overflow int64 is refused outright,
// leaving the prior quantity unchanged.
func (c *Cart) UpdateQuantity(key Key, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return
	}
	if delta > 0 && it.Quantity > math.MaxInt64-delta {
		return
	}

	q := it.Quantity + delta
	switch {
	case q <= 0:
		c.deleteLocked(key)
	case q > MaxQuantity:
		it.Quantity = MaxQuantity
	default:
		it.Quantity = q
	}
	c.recompute()
}

// RemoveItem deletes a line regardless of quantity; unknown keys are no-ops.
func (c *Cart) RemoveItem(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return
	}
	c.deleteLocked(key)
	c.recompute()
}

// Clear empties the cart and resets all tip state and split mode.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[Key]*Item)
	c.order = nil
	c.tipAmount = 0
	c.individualTips = make([]Cents, MaxPayers)
	c.splitMode = false
	c.recompute()
}

func (c *Cart) deleteLocked(key Key) {
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetPromotions replaces the promotions mapping wholesale.
func (c *Cart) SetPromotions(p Promotions) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.promotions = Promotions{}
	for id, promo := range p {
		c.promotions[id] = promo
	}
	c.recompute()
}

// SetCartDiscount replaces the order-level discount; nil removes it.
func (c *Cart) SetCartDiscount(d *Discount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d == nil {
		c.cartDiscount = nil
	} else {
		copied := *d
		c.cartDiscount = &copied
	}
	c.recompute()
}

// SetTipAmount replaces the shared tip used in non-split totals.
func (c *Cart) SetTipAmount(amount Cents) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tipAmount = amount
	c.recompute()
}

// SetIndividualTip sets one payer's tip for split payments. Out-of-range
// indices are rejected as no-ops.
func (c *Cart) SetIndividualTip(index int, amount Cents) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.individualTips) {
		return
	}
	c.individualTips[index] = amount
	c.recompute()
}

// ClearIndividualTips zeroes the per-payer tip array.
func (c *Cart) ClearIndividualTips() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.individualTips = make([]Cents, MaxPayers)
	c.recompute()
}

func (c *Cart) individualTipsTotalLocked() Cents {
	var sum Cents
	for _, tip := range c.individualTips {
		sum += tip
	}
	return sum
}

// IndividualTipsTotal is the sum of all per-payer tips.
func (c *Cart) IndividualTipsTotal() Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.individualTipsTotalLocked()
}

// SetSplitMode switches the total between the shared tip and the sum of
// per-payer tips.
func (c *Cart) SetSplitMode(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.splitMode = enabled
	c.recompute()
}

func (c *Cart) SplitMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.splitMode
}

// SplitTotal is the amount one payer owes in split mode: the shared
// pre-tip total plus that payer's tip. Outside split mode, or for an
// out-of-range index, it is the pre-tip total.
func (c *Cart) SplitTotal(payer int) Cents {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.splitMode || payer < 0 || payer >= len(c.individualTips) {
		return c.totals.TotalWithoutTip
	}
	return c.totals.TotalWithoutTip + c.individualTips[payer]
}

// SetPaymentStarted latches whether payment has begun. The cart does not
// enforce immutability once set; the surface around it disables mutation
// controls.
func (c *Cart) SetPaymentStarted(started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paymentStarted = started
}

func (c *Cart) PaymentStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paymentStarted
}

// Items returns the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.items[key])
	}
	return out
}

// Item looks a line up by key.
func (c *Cart) Item(key Key) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Len is the number of lines (not units) in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Totals returns the current derived-amount snapshot.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals
}

func (c *Cart) TipAmount() Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tipAmount
}

// IndividualTips returns a copy of the per-payer tip array.
func (c *Cart) IndividualTips() []Cents {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Cents, len(c.individualTips))
	copy(out, c.individualTips)
	return out
}

// Promotions returns a copy of the active promotions mapping.
func (c *Cart) Promotions() Promotions {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := Promotions{}
	for id, promo := range c.promotions {
		out[id] = promo
	}
	return out
}

// CartDiscount returns a copy of the order-level discount, or nil.
func (c *Cart) CartDiscount() *Discount {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cartDiscount == nil {
		return nil
	}
	copied := *c.cartDiscount
	return &copied
}

func (c *Cart) Currency() currency.Currency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formatter.Currency()
}

func (c *Cart) SetCurrency(cur currency.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formatter.SetCurrency(cur)
}

// FormatPrice renders cents through the injected currency formatter.
func (c *Cart) FormatPrice(v Cents) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formatter.FormatPrice(v)
}
