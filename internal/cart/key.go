package cart

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key identifies a cart line: one product plus one set of selected
// variations. Re-adding the same combination increments quantity instead of
// creating a duplicate line.
type Key = string

const (
	keyPrefixSeparator  = "___"
	variationSeparator  = "|||"
	noVariationSentinel = "default"
)

// GenerateKey derives the line identity for a product and its selected
// variations. Names are sorted with a locale-aware collator before joining,
// so any permutation of the same variation set yields the same key. Pure;
// callers may use it to probe for line existence without mutating the cart.
func GenerateKey(product Product, variations []Variation) Key {
	names := make([]string, len(variations))
	for i, v := range variations {
		names[i] = v.Name
	}

	coll := collate.New(language.Und)
	sort.SliceStable(names, func(i, j int) bool {
		return coll.CompareString(names[i], names[j]) < 0
	})

	joined := strings.Join(names, variationSeparator)
	if joined == "" {
		joined = noVariationSentinel
	}
	return product.ID + keyPrefixSeparator + joined
}
