package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dreampos/internal/cart"
)

// Promotion is the persisted per-product promotion rule. Type is one of
// percent, fixed, price; Value is a percentage for percent and cents
// otherwise.
type Promotion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID string             `bson:"productId" json:"productId"`
	Type      string             `bson:"type" json:"type"`
	Value     int64              `bson:"value" json:"value"`
}

// CartPromotions converts a set of promotion documents into the mapping the
// cart engine consumes. Later documents for the same product win.
func CartPromotions(docs []Promotion) cart.Promotions {
	out := cart.Promotions{}
	for _, d := range docs {
		out[d.ProductID] = cart.Promotion{
			Type:  cart.PromotionType(d.Type),
			Value: d.Value,
		}
	}
	return out
}
