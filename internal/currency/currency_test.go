package currency

import "testing"

func TestFormatPriceSymbolFirst(t *testing.T) {
	tests := []struct {
		currency Currency
		cents    int64
		want     string
	}{
		{USD, 1234, "$12.34"},
		{EUR, 1234, "€12.34"},
		{GBP, 1234, "£12.34"},
		{USD, 5, "$0.05"},
		{USD, 0, "$0.00"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.currency, "en")
		if got := f.FormatPrice(tt.cents); got != tt.want {
			t.Fatalf("FormatPrice(%d) in %s = %q, want %q", tt.cents, tt.currency, got, tt.want)
		}
	}
}

func TestFormatPriceLithuanianEuro(t *testing.T) {
	f := NewFormatter(EUR, "lt")
	if got := f.FormatPrice(1234); got != "12,34 €" {
		t.Fatalf("expected comma-decimal trailing symbol, got %q", got)
	}

	// The comma rule is tied to the locale+currency pairing, not the locale.
	f = NewFormatter(USD, "lt")
	if got := f.FormatPrice(1234); got != "$12.34" {
		t.Fatalf("expected dot-decimal for lt USD, got %q", got)
	}
}

func TestSetCurrencyChangesFormatting(t *testing.T) {
	f := NewFormatter(USD, "en")
	f.SetCurrency(GBP)
	if got := f.FormatPrice(100); got != "£1.00" {
		t.Fatalf("expected £1.00, got %q", got)
	}
}

func TestDefaultCurrencyForLocale(t *testing.T) {
	tests := []struct {
		lang string
		want Currency
	}{
		{"lt", EUR},
		{"lt-LT", EUR},
		{"en-GB", GBP},
		{"en", GBP},
		{"us", USD},
		{"fr", USD},
		{"", USD},
	}
	for _, tt := range tests {
		if got := DefaultCurrencyForLocale(tt.lang); got != tt.want {
			t.Fatalf("DefaultCurrencyForLocale(%q) = %s, want %s", tt.lang, got, tt.want)
		}
	}
}
