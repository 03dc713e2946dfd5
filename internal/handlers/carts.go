package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"dreampos/internal/cart"
	"dreampos/internal/currency"
	"dreampos/internal/models"
)

type openRegisterRequest struct {
	Locale string `json:"locale"`
}

// POST /registers/:id/open
// Opens (or re-opens) a register. A fresh register picks its currency from
// the requested locale and loads the active promotions.
func OpenRegister(db *mongo.Database, registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /registers/:id/open"
		defer handlePanic(c, route)

		var req openRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		id := c.Param("id")
		_, existed := registry.Get(id)
		crt := registry.Open(id)

		if !existed && strings.TrimSpace(req.Locale) != "" {
			crt.SetCurrency(currency.DefaultCurrencyForLocale(req.Locale))
		}

		if promos, err := loadPromotions(c.Request.Context(), db); err != nil {
			log.Printf("[%s] promotions load failed: %v", route, err)
		} else {
			crt.SetPromotions(promos)
		}

		log.Printf("[%s] register %s open", route, id)
		c.JSON(http.StatusOK, cartView(id, crt))
	}
}

type addItemRequest struct {
	ProductID    string  `json:"productId" binding:"required"`
	VariationIDs []int64 `json:"variationIds"`
}

// POST /registers/:id/cart/items
// Adds one unit of a product. The product and its variations are resolved
// from the catalog; the cart never trusts prices from the client.
func AddCartItem(db *mongo.Database, registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /registers/:id/cart/items"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, err := findCartProduct(c.Request.Context(), db, req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		variations, ok := selectVariations(product, req.VariationIDs)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown variation id")
			return
		}

		key := crt.AddToCart(product, variations...)
		log.Printf("[%s] added %s", route, key)
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

type quantityRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// PATCH /registers/:id/cart/items/:key
func UpdateCartItemQuantity(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /registers/:id/cart/items/:key"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		var req quantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		crt.UpdateQuantity(c.Param("key"), req.Delta)
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// DELETE /registers/:id/cart/items/:key
func RemoveCartItem(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /registers/:id/cart/items/:key"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		crt.RemoveItem(c.Param("key"))
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// DELETE /registers/:id/cart
func ClearCart(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /registers/:id/cart"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		crt.Clear()
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// GET /registers/:id/cart
func GetCart(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /registers/:id/cart"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

type tipRequest struct {
	Amount int64 `json:"amount"`
}

// PUT /registers/:id/cart/tip
func SetTip(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /registers/:id/cart/tip"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		var req tipRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount < 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid tip amount")
			return
		}

		crt.SetTipAmount(req.Amount)
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// PUT /registers/:id/cart/tips/:index
func SetIndividualTip(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /registers/:id/cart/tips/:index"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid payer index")
			return
		}

		var req tipRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount < 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid tip amount")
			return
		}

		crt.SetIndividualTip(index, req.Amount)
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// DELETE /registers/:id/cart/tips
func ClearIndividualTips(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /registers/:id/cart/tips"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		crt.ClearIndividualTips()
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

type splitModeRequest struct {
	Enabled bool `json:"enabled"`
}

// PUT /registers/:id/cart/split
func SetSplitMode(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /registers/:id/cart/split"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		var req splitModeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		crt.SetSplitMode(req.Enabled)
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

type cartDiscountRequest struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

// PUT /registers/:id/cart/discount
// An empty body clears the discount.
func SetCartDiscount(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /registers/:id/cart/discount"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		if c.Request.ContentLength == 0 {
			crt.SetCartDiscount(nil)
			c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
			return
		}

		var req cartDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		switch cart.DiscountType(req.Type) {
		case cart.DiscountPercent, cart.DiscountFixed:
		default:
			respondWithError(c, http.StatusBadRequest, route, "unknown discount type")
			return
		}

		crt.SetCartDiscount(&cart.Discount{
			Type:  cart.DiscountType(req.Type),
			Value: req.Value,
		})
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

type currencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// PUT /registers/:id/cart/currency
func SetCartCurrency(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /registers/:id/cart/currency"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		var req currencyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		crt.SetCurrency(currency.Currency(strings.ToUpper(strings.TrimSpace(req.Currency))))
		c.JSON(http.StatusOK, cartView(c.Param("id"), crt))
	}
}

// GET /registers/:id/cart/discounts/:productId
// The per-unit promotion discount shown next to a catalog tile.
func GetProductDiscount(registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /registers/:id/cart/discounts/:productId"
		defer handlePanic(c, route)

		crt, ok := registerCart(c, registry, route)
		if !ok {
			return
		}

		d := crt.DiscountFor(c.Param("productId"))
		if d == nil {
			c.JSON(http.StatusOK, gin.H{"discount": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"discount": d})
	}
}

/* =========================
   VIEW BUILDING
========================= */

type cartItemView struct {
	Key cart.Key `json:"key"`
	cart.Item
	UnitPrice          int64  `json:"unitPrice"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
}

type cartViewResponse struct {
	RegisterID     string            `json:"registerId"`
	Items          []cartItemView    `json:"items"`
	Totals         cart.Totals       `json:"totals"`
	TotalFormatted string            `json:"totalFormatted"`
	Currency       currency.Currency `json:"currency"`
	TipAmount      int64             `json:"tipAmount"`
	IndividualTips []int64           `json:"individualTips"`
	SplitMode      bool              `json:"splitMode"`
	PaymentStarted bool              `json:"paymentStarted"`
}

func cartView(registerID string, crt *cart.Cart) cartViewResponse {
	items := crt.Items()
	views := make([]cartItemView, 0, len(items))
	for _, it := range items {
		unit := cart.FinalPrice(it.Product, it.SelectedVariations)
		views = append(views, cartItemView{
			Key:                cart.GenerateKey(it.Product, it.SelectedVariations),
			Item:               it,
			UnitPrice:          unit,
			UnitPriceFormatted: crt.FormatPrice(unit),
		})
	}

	totals := crt.Totals()
	return cartViewResponse{
		RegisterID:     registerID,
		Items:          views,
		Totals:         totals,
		TotalFormatted: crt.FormatPrice(totals.Total),
		Currency:       crt.Currency(),
		TipAmount:      crt.TipAmount(),
		IndividualTips: crt.IndividualTips(),
		SplitMode:      crt.SplitMode(),
		PaymentStarted: crt.PaymentStarted(),
	}
}

/* =========================
   CATALOG LOOKUPS
========================= */

func findCartProduct(ctx context.Context, db *mongo.Database, productID string) (cart.Product, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var raw bson.M
	err := db.Collection("products").FindOne(findCtx, bson.M{
		"productId": strings.TrimSpace(productID),
		"isActive":  bson.M{"$ne": false},
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&raw)
	if err != nil {
		return cart.Product{}, err
	}

	product, err := normalizeProductDocument(raw)
	if err != nil {
		return cart.Product{}, err
	}
	return product.CartProduct(), nil
}

func selectVariations(product cart.Product, ids []int64) ([]cart.Variation, bool) {
	byID := make(map[int64]cart.Variation, len(product.Variations))
	for _, v := range product.Variations {
		byID[v.ID] = v
	}

	out := make([]cart.Variation, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func loadPromotions(ctx context.Context, db *mongo.Database) (cart.Promotions, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("promotions").Find(findCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(findCtx)

	var docs []models.Promotion
	if err := cursor.All(findCtx, &docs); err != nil {
		return nil, err
	}
	return models.CartPromotions(docs), nil
}
