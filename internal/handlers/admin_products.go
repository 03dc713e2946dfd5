package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"dreampos/internal/models"
)

type variationRequest struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" binding:"required"`
	NameKey       string `json:"nameKey"`
	PriceModifier int64  `json:"priceModifier"`
}

type createProductRequest struct {
	ProductID  string             `json:"id" binding:"required"`
	Name       string             `json:"name" binding:"required"`
	NameKey    string             `json:"nameKey"`
	BasePrice  int64              `json:"basePrice" binding:"required"`
	Categories []string           `json:"categories"`
	Variations []variationRequest `json:"variations"`
	Stock      int                `json:"stock"`
	IsActive   *bool              `json:"isActive"`
}

type updateProductRequest struct {
	Name       *string             `json:"name"`
	NameKey    *string             `json:"nameKey"`
	BasePrice  *int64              `json:"basePrice"`
	Categories *[]string           `json:"categories"`
	Variations *[]variationRequest `json:"variations"`
	Stock      *int                `json:"stock"`
	IsActive   *bool               `json:"isActive"`
}

func normalizeCategories(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)

	for _, v := range values {
		name := strings.TrimSpace(v)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func variationsFromRequest(reqs []variationRequest) []models.Variation {
	out := make([]models.Variation, 0, len(reqs))
	for i, r := range reqs {
		id := r.ID
		if id == 0 {
			id = int64(i + 1)
		}
		out = append(out, models.Variation{
			ID:            id,
			Name:          strings.TrimSpace(r.Name),
			NameKey:       strings.TrimSpace(r.NameKey),
			PriceModifier: r.PriceModifier,
		})
	}
	return out
}

// POST /admin/api/products
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if req.BasePrice < 0 {
			respondWithError(c, http.StatusBadRequest, route, "basePrice must not be negative")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		productID := strings.TrimSpace(req.ProductID)
		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"productId": productID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "product id already exists")
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		product := models.Product{
			ProductID:  productID,
			Name:       strings.TrimSpace(req.Name),
			NameKey:    strings.TrimSpace(req.NameKey),
			BasePrice:  req.BasePrice,
			Categories: normalizeCategories(req.Categories),
			Variations: variationsFromRequest(req.Variations),
			Stock:      req.Stock,
			IsActive:   active,
			CreatedAt:  time.Now(),
		}

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] created product %s", route, product.ProductID)
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/api/products/:id
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.NameKey != nil {
			set["nameKey"] = strings.TrimSpace(*req.NameKey)
		}
		if req.BasePrice != nil {
			if *req.BasePrice < 0 {
				respondWithError(c, http.StatusBadRequest, route, "basePrice must not be negative")
				return
			}
			set["basePrice"] = *req.BasePrice
		}
		if req.Categories != nil {
			set["categories"] = normalizeCategories(*req.Categories)
		}
		if req.Variations != nil {
			set["variations"] = variationsFromRequest(*req.Variations)
		}
		if req.Stock != nil {
			set["stock"] = *req.Stock
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}

		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(ctx,
			bson.M{"productId": c.Param("id"), "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": set},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// DELETE /admin/api/products/:id (soft delete)
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(ctx,
			bson.M{"productId": c.Param("id"), "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"isDeleted": true, "isActive": false, "deletedAt": now}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
