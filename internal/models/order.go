package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPaid     = "paid"
	OrderStatusRefunded = "refunded"
	OrderStatusVoided   = "voided"
)

// OrderItem is one captured cart line. UnitPrice is the per-unit price in
// cents with variation modifiers applied, before promotions; LineTotal is
// UnitPrice times Quantity. The promotion and discount effect is carried in
// the order's totals snapshot, not per line.
type OrderItem struct {
	ProductID  string      `bson:"productId" json:"productId"`
	Name       string      `bson:"name" json:"name"`
	Variations []Variation `bson:"variations,omitempty" json:"variations,omitempty"`
	UnitPrice  int64       `bson:"unitPrice" json:"unitPrice"`
	Quantity   int64       `bson:"quantity" json:"quantity"`
	LineTotal  int64       `bson:"lineTotal" json:"lineTotal"`
	InstanceID string      `bson:"instanceId,omitempty" json:"instanceId,omitempty"`
}

// OrderTotals is the cart's derived-amount snapshot at capture time, all in
// cents.
type OrderTotals struct {
	Subtotal           int64 `bson:"subtotal" json:"subtotal"`
	DiscountTotal      int64 `bson:"discountTotal" json:"discountTotal"`
	CartDiscountAmount int64 `bson:"cartDiscountAmount" json:"cartDiscountAmount"`
	TotalWithoutTip    int64 `bson:"totalWithoutTip" json:"totalWithoutTip"`
	TipAmount          int64 `bson:"tipAmount" json:"tipAmount"`
	Total              int64 `bson:"total" json:"total"`
}

// Payment is one settled payment against an order. Split payments produce
// several entries, each with the payer's index and individual tip.
type Payment struct {
	ID         string    `bson:"id" json:"id"`
	Method     string    `bson:"method" json:"method"`
	Amount     int64     `bson:"amount" json:"amount"`
	TipAmount  int64     `bson:"tipAmount" json:"tipAmount"`
	PayerIndex *int      `bson:"payerIndex,omitempty" json:"payerIndex,omitempty"`
	PaidAt     time.Time `bson:"paidAt" json:"paidAt"`
}

// Order is the persisted order document, captured from a register's cart.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number     string             `bson:"number" json:"number"`
	RegisterID string             `bson:"registerId" json:"registerId"`
	StaffID    *primitive.ObjectID `bson:"staffId,omitempty" json:"staffId,omitempty"`
	Items      []OrderItem        `bson:"items" json:"items"`
	Totals     OrderTotals        `bson:"totals" json:"totals"`
	Currency   string             `bson:"currency" json:"currency"`
	Split      bool               `bson:"split" json:"split"`
	Payments   []Payment          `bson:"payments" json:"payments"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
