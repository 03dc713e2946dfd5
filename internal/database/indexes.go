package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	productIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().
			SetName("productId_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating productId_unique index")
	if _, err := indexes.CreateOne(ctx, productIDIndex); err != nil {
		log.Println("EnsureProductIndexes: productId index error:", err)
		return err
	}

	categoriesIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "categories", Value: 1}},
		Options: options.Index().SetName("categories_index"),
	}

	if _, err := indexes.CreateOne(ctx, categoriesIndex); err != nil {
		log.Println("EnsureProductIndexes: categories index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: product indexes created")
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	if _, err := indexes.CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	numberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "number", Value: 1}},
		Options: options.Index().
			SetName("number_unique").
			SetUnique(true),
	}

	log.Println("EnsureOrderIndexes: creating number_unique index")
	if _, err := indexes.CreateOne(ctx, numberIndex); err != nil {
		log.Println("EnsureOrderIndexes: number index error:", err)
		return err
	}

	registerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "registerId", Value: 1}},
		Options: options.Index().SetName("registerId_index"),
	}

	if _, err := indexes.CreateOne(ctx, registerIndex); err != nil {
		log.Println("EnsureOrderIndexes: registerId index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsurePromotionIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("promotions").Indexes()

	productIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().
			SetName("productId_unique").
			SetUnique(true),
	}

	log.Println("EnsurePromotionIndexes: creating productId_unique index")
	if _, err := indexes.CreateOne(ctx, productIDIndex); err != nil {
		log.Println("EnsurePromotionIndexes: productId index error:", err)
		return err
	}
	log.Println("EnsurePromotionIndexes: productId_unique index created")
	return nil
}
