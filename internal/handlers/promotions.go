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

	"dreampos/internal/cart"
	"dreampos/internal/models"
)

// GET /admin/api/promotions
func GetPromotions(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/promotions"
		defer handlePanic(c, route)

		promos, err := listPromotionDocs(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, promos)
	}
}

type promotionRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Value     int64  `json:"value"`
}

// PUT /admin/api/promotions
// Full replacement of the promotion set. Open register carts pick the new
// set up immediately.
func ReplacePromotions(db *mongo.Database, registry *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/promotions"
		defer handlePanic(c, route)

		var reqs []promotionRequest
		if err := c.ShouldBindJSON(&reqs); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		docs := make([]interface{}, 0, len(reqs))
		for _, r := range reqs {
			switch cart.PromotionType(r.Type) {
			case cart.PromoPercent, cart.PromoFixed, cart.PromoPrice:
			default:
				respondWithError(c, http.StatusBadRequest, route, "unknown promotion type: "+r.Type)
				return
			}
			if r.Value < 0 {
				respondWithError(c, http.StatusBadRequest, route, "value must not be negative")
				return
			}
			docs = append(docs, models.Promotion{
				ProductID: strings.TrimSpace(r.ProductID),
				Type:      r.Type,
				Value:     r.Value,
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		coll := db.Collection("promotions")
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if len(docs) > 0 {
			if _, err := coll.InsertMany(ctx, docs); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		promos, err := listPromotionDocs(c.Request.Context(), db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		mapping := models.CartPromotions(promos)
		registry.Each(func(id string, crt *cart.Cart) {
			crt.SetPromotions(mapping)
		})

		log.Printf("[%s] replaced promotions, %d active", route, len(promos))
		c.JSON(http.StatusOK, promos)
	}
}

func listPromotionDocs(ctx context.Context, db *mongo.Database) ([]models.Promotion, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("promotions").Find(findCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(findCtx)

	promos := make([]models.Promotion, 0)
	if err := cursor.All(findCtx, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}
