package cart

import "testing"

func TestGenerateKeyNoVariationsUsesSentinel(t *testing.T) {
	p := Product{ID: "iced-latte", BasePrice: 450}
	if got := GenerateKey(p, nil); got != "iced-latte___default" {
		t.Fatalf("expected sentinel key, got %q", got)
	}
}

func TestGenerateKeyIsOrderInsensitive(t *testing.T) {
	p := Product{ID: "iced-latte", BasePrice: 450}
	oatMilk := Variation{ID: 1, Name: "Oat Milk", PriceModifier: 50}
	largeSize := Variation{ID: 2, Name: "Large", PriceModifier: 100}
	extraShot := Variation{ID: 3, Name: "Extra Shot", PriceModifier: 75}

	k1 := GenerateKey(p, []Variation{oatMilk, largeSize, extraShot})
	k2 := GenerateKey(p, []Variation{extraShot, oatMilk, largeSize})
	k3 := GenerateKey(p, []Variation{largeSize, extraShot, oatMilk})

	if k1 != k2 || k2 != k3 {
		t.Fatalf("permutations produced different keys: %q %q %q", k1, k2, k3)
	}
}

func TestGenerateKeyJoinsSortedNames(t *testing.T) {
	p := Product{ID: "latte", BasePrice: 400}
	got := GenerateKey(p, []Variation{
		{Name: "Oat Milk"},
		{Name: "Extra Shot"},
	})
	want := "latte___Extra Shot|||Oat Milk"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGenerateKeyDoesNotMutateInput(t *testing.T) {
	p := Product{ID: "latte", BasePrice: 400}
	variations := []Variation{{Name: "Oat Milk"}, {Name: "Extra Shot"}}

	GenerateKey(p, variations)

	if variations[0].Name != "Oat Milk" || variations[1].Name != "Extra Shot" {
		t.Fatalf("input slice was reordered: %v", variations)
	}
}
