package handlers

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeProductDocumentFloatPrice(t *testing.T) {
	raw := bson.M{
		"productId": "latte",
		"name":      "Latte",
		"basePrice": float64(450),
		"stock":     int32(12),
	}

	p, err := normalizeProductDocument(raw)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if p.BasePrice != 450 {
		t.Fatalf("expected basePrice 450, got %d", p.BasePrice)
	}
	if p.Stock != 12 {
		t.Fatalf("expected stock 12, got %d", p.Stock)
	}
	if !p.InStock {
		t.Fatal("expected product to be in stock")
	}
}

func TestNormalizeProductDocumentMissingFields(t *testing.T) {
	raw := bson.M{
		"productId": "espresso",
		"name":      "Espresso",
	}

	p, err := normalizeProductDocument(raw)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if p.BasePrice != 0 {
		t.Fatalf("expected basePrice 0, got %d", p.BasePrice)
	}
	if p.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", p.Stock)
	}
	if p.InStock {
		t.Fatal("expected product to be out of stock")
	}
}

func TestNormalizeProductDocumentBadPriceType(t *testing.T) {
	raw := bson.M{
		"productId": "tea",
		"name":      "Tea",
		"basePrice": "free",
	}

	p, err := normalizeProductDocument(raw)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if p.BasePrice != 0 {
		t.Fatalf("expected basePrice 0 for a bad type, got %d", p.BasePrice)
	}
}

func TestNormalizeCategories(t *testing.T) {
	got := normalizeCategories([]string{" drinks ", "drinks", "", "food", "  "})
	want := []string{"drinks", "food"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestVariationsFromRequestAssignsIDs(t *testing.T) {
	out := variationsFromRequest([]variationRequest{
		{Name: "Oat Milk", PriceModifier: 50},
		{ID: 9, Name: "Extra Shot", PriceModifier: 100},
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 variations, got %d", len(out))
	}
	if out[0].ID != 1 {
		t.Fatalf("expected auto id 1, got %d", out[0].ID)
	}
	if out[1].ID != 9 {
		t.Fatalf("expected explicit id 9, got %d", out[1].ID)
	}
}
