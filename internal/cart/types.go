package cart

// Variation is an optional product modifier with a signed price delta.
type Variation struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	NameKey       string `json:"nameKey,omitempty"`
	PriceModifier Cents  `json:"priceModifier"`
}

// Product is a catalog entry as the cart sees it. Products are owned by the
// catalog; the cart only references them and never mutates them.
type Product struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	NameKey    string      `json:"nameKey,omitempty"`
	BasePrice  Cents       `json:"basePrice"`
	Categories []string    `json:"categories,omitempty"`
	Variations []Variation `json:"variations,omitempty"`
}

// Item is one line in the cart. ID is a synthetic counter and informational
// only; InstanceID is a uuid used to track the line across split payments.
type Item struct {
	ID                 int64       `json:"id"`
	Product            Product     `json:"product"`
	SelectedVariations []Variation `json:"selectedVariations"`
	Quantity           int64       `json:"quantity"`
	InstanceID         string      `json:"instanceId,omitempty"`
}

type PromotionType string

const (
	PromoPercent PromotionType = "percent"
	PromoFixed   PromotionType = "fixed"
	PromoPrice   PromotionType = "price"
)

// Promotion is a per-product price adjustment, applied per unit before
// quantity multiplication. Value is a percentage for PromoPercent and cents
// for PromoFixed (amount off) and PromoPrice (final price override).
type Promotion struct {
	Type  PromotionType `json:"type"`
	Value int64         `json:"value"`
}

// Promotions maps product ids to their active promotion.
type Promotions = map[string]Promotion

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Discount is an order-level adjustment applied once to the post-promotion
// subtotal.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value int64        `json:"value"`
}
