package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"dreampos/internal/cart"
	"dreampos/internal/config"
	"dreampos/internal/currency"
	"dreampos/internal/database"
	"dreampos/internal/handlers"
	"dreampos/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsurePromotionIndexes(db); err != nil {
		log.Printf("promotion index warning: %v", err)
	}

	registry := cart.NewRegistry(func() *currency.Formatter {
		locale := config.AppEnv.DefaultLocale
		return currency.NewFormatter(currency.DefaultCurrencyForLocale(locale), locale)
	})

	r := gin.Default()

	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.StaffIdentity(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/categories", handlers.GetCategories(db))

	registers := r.Group("/registers")
	registers.Use(middleware.StaffAuth(config.AppEnv.JWTSecret))
	{
		registers.POST("/:id/open", handlers.OpenRegister(db, registry))
		registers.GET("/:id/cart", handlers.GetCart(registry))
		registers.DELETE("/:id/cart", handlers.ClearCart(registry))

		registers.POST("/:id/cart/items", handlers.AddCartItem(db, registry))
		registers.PATCH("/:id/cart/items/:key", handlers.UpdateCartItemQuantity(registry))
		registers.DELETE("/:id/cart/items/:key", handlers.RemoveCartItem(registry))

		registers.PUT("/:id/cart/tip", handlers.SetTip(registry))
		registers.PUT("/:id/cart/tips/:index", handlers.SetIndividualTip(registry))
		registers.DELETE("/:id/cart/tips", handlers.ClearIndividualTips(registry))
		registers.PUT("/:id/cart/split", handlers.SetSplitMode(registry))
		registers.PUT("/:id/cart/discount", handlers.SetCartDiscount(registry))
		registers.PUT("/:id/cart/currency", handlers.SetCartCurrency(registry))
		registers.GET("/:id/cart/discounts/:productId", handlers.GetProductDiscount(registry))
	}

	orders := r.Group("/orders")
	orders.Use(middleware.StaffIdentity(config.AppEnv.JWTSecret))
	{
		orders.POST("", handlers.CreateOrder(db, registry))
		orders.GET("", handlers.GetOrders(db))
		orders.GET("/:id", handlers.GetOrder(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.ManagerAuth(config.AppEnv.JWTSecret))
	{
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/promotions", handlers.GetPromotions(db))
		admin.PUT("/promotions", handlers.ReplacePromotions(db, registry))

		admin.POST("/staff", handlers.RegisterStaff(db))

		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
