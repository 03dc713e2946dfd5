package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dreampos/internal/cart"
	"dreampos/internal/models"
)

type orderPaymentRequest struct {
	Method     string `json:"method" binding:"required"`
	Amount     int64  `json:"amount"`
	TipAmount  int64  `json:"tipAmount"`
	PayerIndex *int   `json:"payerIndex"`
}

type createOrderRequest struct {
	RegisterID string                `json:"registerId" binding:"required"`
	Payments   []orderPaymentRequest `json:"payments" binding:"required"`
}

// POST /orders
// Captures an order from a register's cart. Totals come from the pricing
// engine, never from the request; payments must cover the engine's total
// exactly. On success the cart is cleared for the next sale.
func CreateOrder(db *mongo.Database, registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		crt, ok := registry.Get(req.RegisterID)
		if !ok {
			respondWithError(c, http.StatusNotFound, route, "register has no open cart")
			return
		}
		if crt.Len() == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		crt.SetPaymentStarted(true)

		var staffID *primitive.ObjectID
		if v, exists := c.Get("staffId"); exists {
			if id, ok := v.(primitive.ObjectID); ok {
				staffID = &id
			}
		}

		payments := make([]models.Payment, 0, len(req.Payments))
		now := time.Now()
		for _, p := range req.Payments {
			payments = append(payments, models.Payment{
				ID:         uuid.NewString(),
				Method:     p.Method,
				Amount:     p.Amount,
				TipAmount:  p.TipAmount,
				PayerIndex: p.PayerIndex,
				PaidAt:     now,
			})
		}

		order, err := buildOrderFromCart(req.RegisterID, staffID, crt, payments)
		if err != nil {
			crt.SetPaymentStarted(false)
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			crt.SetPaymentStarted(false)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		order.ID, _ = res.InsertedID.(primitive.ObjectID)

		crt.Clear()
		crt.SetPaymentStarted(false)

		log.Printf("[%s] captured order %s for register %s", route, order.Number, order.RegisterID)
		c.JSON(http.StatusCreated, order)
	}
}

// buildOrderFromCart snapshots a cart into a persistable order. Pure over
// the cart's current state; fails when the payments do not cover the
// engine's total exactly.
func buildOrderFromCart(registerID string, staffID *primitive.ObjectID, crt *cart.Cart, payments []models.Payment) (models.Order, error) {
	totals := crt.Totals()

	var paid int64
	split := crt.SplitMode()
	for _, p := range payments {
		if p.Amount < 0 || p.TipAmount < 0 {
			return models.Order{}, errors.New("payment amounts must not be negative")
		}
		if split && p.PayerIndex == nil {
			return models.Order{}, errors.New("payerIndex is required for split payments")
		}
		paid += p.Amount
	}
	if paid != totals.Total {
		return models.Order{}, errors.New("payments do not match the order total")
	}

	items := crt.Items()
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		unit := cart.FinalPrice(it.Product, it.SelectedVariations)

		variations := make([]models.Variation, 0, len(it.SelectedVariations))
		for _, v := range it.SelectedVariations {
			variations = append(variations, models.Variation{
				ID:            v.ID,
				Name:          v.Name,
				NameKey:       v.NameKey,
				PriceModifier: v.PriceModifier,
			})
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:  it.Product.ID,
			Name:       it.Product.Name,
			Variations: variations,
			UnitPrice:  unit,
			Quantity:   it.Quantity,
			LineTotal:  unit * it.Quantity,
			InstanceID: it.InstanceID,
		})
	}

	return models.Order{
		Number:     uuid.NewString(),
		RegisterID: registerID,
		StaffID:    staffID,
		Items:      orderItems,
		Totals: models.OrderTotals{
			Subtotal:           totals.Subtotal,
			DiscountTotal:      totals.DiscountTotal,
			CartDiscountAmount: totals.CartDiscountAmount,
			TotalWithoutTip:    totals.TotalWithoutTip,
			TipAmount:          totals.TipAmount,
			Total:              totals.Total,
		},
		Currency:  string(crt.Currency()),
		Split:     split,
		Payments:  payments,
		Status:    models.OrderStatusPaid,
		CreatedAt: time.Now(),
	}, nil
}

// GET /orders
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if register := c.Query("register"); register != "" {
			filter["registerId"] = register
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
// Accepts either the Mongo object id or the order number.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		param := c.Param("id")

		filter := bson.M{"number": param}
		if objectID, err := primitive.ObjectIDFromHex(param); err == nil {
			filter = bson.M{"_id": objectID}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, filter).Decode(&order); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DELETE /admin/api/orders/:id
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": models.OrderStatusVoided}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order voided"})
	}
}
