package cart

// Totals is one consistent snapshot of every derived amount. All fields are
// recomputed together in a single pass so a displayed subtotal can never
// disagree with a displayed total.
type Totals struct {
	Subtotal           Cents `json:"subtotal"`
	DiscountTotal      Cents `json:"discountTotal"`
	CartDiscountAmount Cents `json:"cartDiscountAmount"`
	TotalWithoutTip    Cents `json:"totalWithoutTip"`
	TipAmount          Cents `json:"tipAmount"`
	Total              Cents `json:"total"`
}

// FinalPrice is the per-unit price of a product with the given variations:
// base price plus modifiers, floored at zero.
func FinalPrice(product Product, variations []Variation) Cents {
	extra := Cents(0)
	for _, v := range variations {
		extra += v.PriceModifier
	}
	price := product.BasePrice + extra
	if price < 0 {
		return 0
	}
	return price
}

// priceAfterPromotion applies a per-unit promotion to a base price. A fixed
// promotion larger than the base clamps the result to zero, which inflates
// the implied discount above the base price; that behavior is kept as the
// product defined it.
func priceAfterPromotion(base Cents, promo Promotion) Cents {
	switch promo.Type {
	case PromoPercent:
		return ClampToCents(float64(base) * (1 - float64(promo.Value)/100))
	case PromoFixed:
		return ClampToCents(float64(base - promo.Value))
	case PromoPrice:
		return ClampToCents(float64(promo.Value))
	}
	return base
}

// recompute rebuilds the Totals snapshot from the current state. Called with
// the cart lock held, after every mutation. O(items), no caching.
func (c *Cart) recompute() {
	var subtotal, itemDiscounts, afterItems Cents

	for _, key := range c.order {
		it := c.items[key]
		base := FinalPrice(it.Product, it.SelectedVariations)

		after := base
		if promo, ok := c.promotions[it.Product.ID]; ok {
			after = priceAfterPromotion(base, promo)
		}

		lineDiscount := base - after

		subtotal += base * it.Quantity
		itemDiscounts += lineDiscount * it.Quantity
		afterItems += after * it.Quantity
	}

	var cartDiscountAmount Cents
	if c.cartDiscount != nil && afterItems > 0 {
		switch c.cartDiscount.Type {
		case DiscountPercent:
			cartDiscountAmount = ClampToCents(float64(afterItems) * float64(c.cartDiscount.Value) / 100)
		case DiscountFixed:
			cartDiscountAmount = c.cartDiscount.Value
			if cartDiscountAmount > afterItems {
				cartDiscountAmount = afterItems
			}
		}
	}

	totalWithoutTip := afterItems - cartDiscountAmount
	if totalWithoutTip < 0 {
		totalWithoutTip = 0
	}

	tip := c.tipAmount
	if c.splitMode {
		tip = c.individualTipsTotalLocked()
	}

	c.totals = Totals{
		Subtotal:           subtotal,
		DiscountTotal:      itemDiscounts + cartDiscountAmount,
		CartDiscountAmount: cartDiscountAmount,
		TotalWithoutTip:    totalWithoutTip,
		TipAmount:          tip,
		Total:              totalWithoutTip + tip,
	}
}

// ItemDiscount is the per-unit discount shown next to a catalog tile.
type ItemDiscount struct {
	Amount    Cents  `json:"amount"`
	Formatted string `json:"formatted"`
}

// DiscountFor re-derives the per-unit discount a promotion grants on a
// product, using the first matching line's variation selection. Returns nil
// when no promotion applies, the product is not in the cart, or the computed
// discount is zero.
func (c *Cart) DiscountFor(productID string) *ItemDiscount {
	c.mu.Lock()
	defer c.mu.Unlock()

	promo, ok := c.promotions[productID]
	if !ok {
		return nil
	}

	var item *Item
	for _, key := range c.order {
		if c.items[key].Product.ID == productID {
			item = c.items[key]
			break
		}
	}
	if item == nil {
		return nil
	}

	base := FinalPrice(item.Product, item.SelectedVariations)

	var discount Cents
	switch promo.Type {
	case PromoPercent:
		discount = ClampToCents(float64(base) * float64(promo.Value) / 100)
	case PromoFixed:
		discount = promo.Value
		if discount > base {
			discount = base
		}
	case PromoPrice:
		discount = ClampToCents(float64(base - promo.Value))
	}

	if discount <= 0 {
		return nil
	}
	return &ItemDiscount{
		Amount:    discount,
		Formatted: c.formatter.FormatPrice(discount),
	}
}
