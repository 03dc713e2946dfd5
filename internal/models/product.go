package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dreampos/internal/cart"
)

// Variation is one selectable product modifier as stored in the catalog.
// PriceModifier is a signed amount of cents.
type Variation struct {
	ID            int64  `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	NameKey       string `bson:"nameKey,omitempty" json:"nameKey,omitempty"`
	PriceModifier int64  `bson:"priceModifier" json:"priceModifier"`
}

// Product is the persisted catalog document. BasePrice is in cents.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID  string             `bson:"productId" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameKey    string             `bson:"nameKey,omitempty" json:"nameKey,omitempty"`
	BasePrice  int64              `bson:"basePrice" json:"basePrice"`
	Categories StringList         `bson:"categories" json:"categories"`
	Variations []Variation        `bson:"variations,omitempty" json:"variations,omitempty"`
	Stock      int                `bson:"stock" json:"stock"`
	InStock    bool               `bson:"-" json:"inStock"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	IsDeleted  bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt  *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// CartProduct converts the catalog document into the value the cart engine
// works with.
func (p Product) CartProduct() cart.Product {
	variations := make([]cart.Variation, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, cart.Variation{
			ID:            v.ID,
			Name:          v.Name,
			NameKey:       v.NameKey,
			PriceModifier: v.PriceModifier,
		})
	}
	return cart.Product{
		ID:         p.ProductID,
		Name:       p.Name,
		NameKey:    p.NameKey,
		BasePrice:  p.BasePrice,
		Categories: p.Categories,
		Variations: variations,
	}
}
