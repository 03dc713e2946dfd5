package cart

import (
	"math"
	"testing"

	"dreampos/internal/currency"
)

func TestAddToCartMergesEquivalentVariationSets(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "latte", BasePrice: 400}
	oat := Variation{Name: "Oat Milk", PriceModifier: 50}
	large := Variation{Name: "Large", PriceModifier: 100}

	c.AddToCart(p, oat, large)
	c.AddToCart(p, large, oat)

	if c.Len() != 1 {
		t.Fatalf("expected one line, got %d", c.Len())
	}
	items := c.Items()
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddToCartDistinctVariationsCreateDistinctLines(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "latte", BasePrice: 400}

	c.AddToCart(p)
	c.AddToCart(p, Variation{Name: "Oat Milk", PriceModifier: 50})

	if c.Len() != 2 {
		t.Fatalf("expected two lines, got %d", c.Len())
	}
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "b", BasePrice: 100})
	c.AddToCart(Product{ID: "a", BasePrice: 200})
	c.AddToCart(Product{ID: "c", BasePrice: 300})
	c.AddToCart(Product{ID: "a", BasePrice: 200})

	items := c.Items()
	ids := []string{items[0].Product.ID, items[1].Product.ID, items[2].Product.ID}
	if ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Fatalf("expected insertion order b,a,c, got %v", ids)
	}
}

func TestUpdateQuantityRemovesLineAtZero(t *testing.T) {
	c := newTestCart()
	p := Product{ID: "latte", BasePrice: 400}
	key := c.AddToCart(p)
	c.UpdateQuantity(key, 2)

	c.UpdateQuantity(key, -3)

	if c.Len() != 0 {
		t.Fatalf("expected line removed, cart has %d lines", c.Len())
	}
	if totals := c.Totals(); totals.Total != 0 {
		t.Fatalf("expected zero total, got %d", totals.Total)
	}
}

func TestUpdateQuantityClampsAtCeiling(t *testing.T) {
	c := newTestCart()
	key := c.AddToCart(Product{ID: "latte", BasePrice: 400})

	c.UpdateQuantity(key, 20000)

	item, ok := c.Item(key)
	if !ok {
		t.Fatal("expected line to exist")
	}
	if item.Quantity != MaxQuantity {
		t.Fatalf("expected quantity clamped to %d, got %d", MaxQuantity, item.Quantity)
	}
}

func TestUpdateQuantityRefusesOverflow(t *testing.T) {
	c := newTestCart()
	key := c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.UpdateQuantity(key, 4)

	c.UpdateQuantity(key, math.MaxInt64)

	item, _ := c.Item(key)
	if item.Quantity != 5 {
		t.Fatalf("expected quantity unchanged at 5, got %d", item.Quantity)
	}
}

func TestUpdateQuantityUnknownKeyIsNoOp(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	before := c.Totals()

	c.UpdateQuantity("ghost___default", 3)

	if after := c.Totals(); after != before {
		t.Fatalf("totals changed: %+v -> %+v", before, after)
	}
}

func TestRemoveItemUnknownKeyIsNoOp(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	before := c.Totals()

	c.RemoveItem("ghost___default")

	if c.Len() != 1 {
		t.Fatalf("expected line untouched, got %d lines", c.Len())
	}
	if after := c.Totals(); after != before {
		t.Fatalf("totals changed: %+v -> %+v", before, after)
	}
}

func TestClearResetsItemsAndTips(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.SetTipAmount(150)
	c.SetIndividualTip(3, 75)
	c.SetSplitMode(true)

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
	if c.TipAmount() != 0 {
		t.Fatalf("expected tip reset, got %d", c.TipAmount())
	}
	if c.IndividualTipsTotal() != 0 {
		t.Fatalf("expected individual tips reset, got %d", c.IndividualTipsTotal())
	}
	if c.SplitMode() {
		t.Fatal("expected split mode off")
	}
	totals := c.Totals()
	if totals.TotalWithoutTip != 0 || totals.Total != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestTotalAlwaysIncludesTip(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.SetTipAmount(100)

	totals := c.Totals()
	if totals.Total != totals.TotalWithoutTip+100 {
		t.Fatalf("total %d != totalWithoutTip %d + tip", totals.Total, totals.TotalWithoutTip)
	}
}

func TestSetIndividualTipOutOfRangeIsNoOp(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.SetSplitMode(true)
	before := c.Totals()

	c.SetIndividualTip(-1, 500)
	c.SetIndividualTip(MaxPayers, 500)

	if c.IndividualTipsTotal() != 0 {
		t.Fatalf("expected no tips recorded, got %d", c.IndividualTipsTotal())
	}
	if after := c.Totals(); after != before {
		t.Fatalf("totals changed: %+v -> %+v", before, after)
	}
}

func TestSplitModeTotalSumsIndividualTips(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.SetTipAmount(999) // shared tip must be ignored in split mode
	c.SetSplitMode(true)
	c.SetIndividualTip(0, 50)
	c.SetIndividualTip(1, 25)

	totals := c.Totals()
	if totals.TipAmount != 75 {
		t.Fatalf("expected tip 75, got %d", totals.TipAmount)
	}
	if totals.Total != totals.TotalWithoutTip+75 {
		t.Fatalf("expected total %d, got %d", totals.TotalWithoutTip+75, totals.Total)
	}

	if got := c.SplitTotal(0); got != totals.TotalWithoutTip+50 {
		t.Fatalf("expected payer 0 total %d, got %d", totals.TotalWithoutTip+50, got)
	}
	if got := c.SplitTotal(7); got != totals.TotalWithoutTip {
		t.Fatalf("expected payer without tip to owe %d, got %d", totals.TotalWithoutTip, got)
	}
}

func TestSplitTotalOutsideSplitMode(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	c.SetIndividualTip(0, 50)

	totals := c.Totals()
	if got := c.SplitTotal(0); got != totals.TotalWithoutTip {
		t.Fatalf("expected pre-tip total %d, got %d", totals.TotalWithoutTip, got)
	}
}

func TestPaymentStartedLatch(t *testing.T) {
	c := newTestCart()
	if c.PaymentStarted() {
		t.Fatal("expected latch off initially")
	}
	c.SetPaymentStarted(true)
	if !c.PaymentStarted() {
		t.Fatal("expected latch on")
	}

	// The container does not enforce immutability; mutation still works.
	c.AddToCart(Product{ID: "latte", BasePrice: 400})
	if c.Len() != 1 {
		t.Fatal("expected mutation to succeed with latch on")
	}
}

func TestNewCollapsesDuplicateInitialItems(t *testing.T) {
	p := Product{ID: "latte", BasePrice: 400}
	c := New(currency.NewFormatter(currency.USD, "en"),
		Item{Product: p, Quantity: 1},
		Item{Product: p, Quantity: 2},
	)

	if c.Len() != 1 {
		t.Fatalf("expected duplicates collapsed to one line, got %d", c.Len())
	}
	items := c.Items()
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if items[0].InstanceID == "" {
		t.Fatal("expected an instance id to be assigned")
	}
}

func TestSetPromotionsReplacesWholesale(t *testing.T) {
	c := newTestCart()
	c.AddToCart(Product{ID: "latte", BasePrice: 1000})
	c.SetPromotions(Promotions{"latte": {Type: PromoPercent, Value: 50}})

	if c.Totals().TotalWithoutTip != 500 {
		t.Fatalf("expected promoted total 500, got %d", c.Totals().TotalWithoutTip)
	}

	c.SetPromotions(Promotions{})

	if c.Totals().TotalWithoutTip != 1000 {
		t.Fatalf("expected promotion gone, total 1000, got %d", c.Totals().TotalWithoutTip)
	}
}
