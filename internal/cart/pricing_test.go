package cart

import (
	"testing"

	"dreampos/internal/currency"
)

func newTestCart() *Cart {
	return New(currency.NewFormatter(currency.USD, "en"))
}

func TestClampToCentsRoundsAndFloors(t *testing.T) {
	tests := []struct {
		in   float64
		want Cents
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{99.6, 100},
		{-0.4, 0},
		{-250, 0},
		{1234, 1234},
	}
	for _, tt := range tests {
		if got := ClampToCents(tt.in); got != tt.want {
			t.Fatalf("ClampToCents(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFinalPriceWithoutVariationsIsBasePrice(t *testing.T) {
	p := Product{ID: "espresso", BasePrice: 300}
	if got := FinalPrice(p, nil); got != 300 {
		t.Fatalf("expected base price 300, got %d", got)
	}
}

func TestFinalPriceSumsModifiersAndFloorsAtZero(t *testing.T) {
	p := Product{ID: "espresso", BasePrice: 300}
	variations := []Variation{
		{Name: "Large", PriceModifier: 100},
		{Name: "Loyalty", PriceModifier: -50},
	}
	if got := FinalPrice(p, variations); got != 350 {
		t.Fatalf("expected 350, got %d", got)
	}

	if got := FinalPrice(p, []Variation{{Name: "Comp", PriceModifier: -1000}}); got != 0 {
		t.Fatalf("expected negative price to floor at 0, got %d", got)
	}
}

func TestPercentPromotionHalvesPrice(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "iced-latte", BasePrice: 1000}
	key := c.AddToCart(p)
	c.UpdateQuantity(key, 1)
	c.SetPromotions(Promotions{"iced-latte": {Type: PromoPercent, Value: 50}})

	totals := c.Totals()
	if totals.Subtotal != 2000 {
		t.Fatalf("expected subtotal 2000, got %d", totals.Subtotal)
	}
	if totals.DiscountTotal != 1000 {
		t.Fatalf("expected discount total 1000, got %d", totals.DiscountTotal)
	}
	if totals.TotalWithoutTip != 1000 {
		t.Fatalf("expected total without tip 1000, got %d", totals.TotalWithoutTip)
	}
}

func TestFixedPromotionLargerThanBaseClampsPriceToZero(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "muffin", BasePrice: 250}
	c.AddToCart(p)
	c.SetPromotions(Promotions{"muffin": {Type: PromoFixed, Value: 9000}})

	totals := c.Totals()
	if totals.TotalWithoutTip != 0 {
		t.Fatalf("expected clamped total 0, got %d", totals.TotalWithoutTip)
	}
	if totals.DiscountTotal != 250 {
		t.Fatalf("expected line discount 250, got %d", totals.DiscountTotal)
	}
}

func TestPricePromotionOverridesUnitPrice(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "combo", BasePrice: 1200}
	c.AddToCart(p)
	c.SetPromotions(Promotions{"combo": {Type: PromoPrice, Value: 999}})

	totals := c.Totals()
	if totals.TotalWithoutTip != 999 {
		t.Fatalf("expected override price 999, got %d", totals.TotalWithoutTip)
	}
	if totals.DiscountTotal != 201 {
		t.Fatalf("expected discount 201, got %d", totals.DiscountTotal)
	}
}

func TestCartFixedDiscountNeverExceedsRemainingTotal(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "espresso", BasePrice: 500})
	c.SetCartDiscount(&Discount{Type: DiscountFixed, Value: 99999})

	totals := c.Totals()
	if totals.CartDiscountAmount != 500 {
		t.Fatalf("expected cart discount capped at 500, got %d", totals.CartDiscountAmount)
	}
	if totals.TotalWithoutTip != 0 {
		t.Fatalf("expected total without tip 0, got %d", totals.TotalWithoutTip)
	}
}

func TestCartDiscountSkippedOnEmptyCart(t *testing.T) {
	c := newTestCart()
	c.SetCartDiscount(&Discount{Type: DiscountPercent, Value: 10})

	totals := c.Totals()
	if totals.CartDiscountAmount != 0 || totals.Total != 0 {
		t.Fatalf("expected zero totals on empty cart, got %+v", totals)
	}
}

func TestEndToEndTotals(t *testing.T) {
	c := newTestCart()

	a := Product{ID: "a", BasePrice: 900}
	c.AddToCart(a)
	c.AddToCart(a)

	b := Product{ID: "b", BasePrice: 400}
	c.AddToCart(b, Variation{Name: "Large", PriceModifier: 50})

	c.SetCartDiscount(&Discount{Type: DiscountPercent, Value: 10})
	c.SetTipAmount(100)

	totals := c.Totals()
	if totals.Subtotal != 2250 {
		t.Fatalf("expected subtotal 2250, got %d", totals.Subtotal)
	}
	if totals.CartDiscountAmount != 225 {
		t.Fatalf("expected cart discount 225, got %d", totals.CartDiscountAmount)
	}
	if totals.TotalWithoutTip != 2025 {
		t.Fatalf("expected total without tip 2025, got %d", totals.TotalWithoutTip)
	}
	if totals.Total != 2125 {
		t.Fatalf("expected total 2125, got %d", totals.Total)
	}
}

func TestDiscountForUsesFirstMatchingLine(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "latte", BasePrice: 400}
	c.AddToCart(p, Variation{Name: "Large", PriceModifier: 100})
	c.SetPromotions(Promotions{"latte": {Type: PromoPercent, Value: 50}})

	d := c.DiscountFor("latte")
	if d == nil {
		t.Fatal("expected a discount")
	}
	if d.Amount != 250 {
		t.Fatalf("expected per-unit discount 250, got %d", d.Amount)
	}
	if d.Formatted != "$2.50" {
		t.Fatalf("expected formatted $2.50, got %q", d.Formatted)
	}
}

func TestDiscountForFixedIsCappedAtBase(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "muffin", BasePrice: 250})
	c.SetPromotions(Promotions{"muffin": {Type: PromoFixed, Value: 9000}})

	d := c.DiscountFor("muffin")
	if d == nil {
		t.Fatal("expected a discount")
	}
	if d.Amount != 250 {
		t.Fatalf("expected discount capped at 250, got %d", d.Amount)
	}
}

func TestDiscountForReturnsNilCases(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "espresso", BasePrice: 300})

	if d := c.DiscountFor("espresso"); d != nil {
		t.Fatalf("expected nil without a promotion, got %+v", d)
	}

	c.SetPromotions(Promotions{"missing": {Type: PromoPercent, Value: 50}})
	if d := c.DiscountFor("missing"); d != nil {
		t.Fatalf("expected nil for product not in cart, got %+v", d)
	}

	c.SetPromotions(Promotions{"espresso": {Type: PromoPrice, Value: 300}})
	if d := c.DiscountFor("espresso"); d != nil {
		t.Fatalf("expected nil for zero discount, got %+v", d)
	}
}
