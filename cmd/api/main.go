package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"farmhub/internal/auth"
	"farmhub/internal/cache"
	"farmhub/internal/cart"
	"farmhub/internal/catalog"
	"farmhub/internal/checkout"
	"farmhub/internal/config"
	"farmhub/internal/database"
	"farmhub/internal/gateway"
	"farmhub/internal/handlers"
	"farmhub/internal/repository"
	"farmhub/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	products := repository.NewProductRepository(db.Collection("products"))
	users := repository.NewUserRepository(db.Collection("users"))
	orders := repository.NewOrderRepository(db.Collection("orders"))
	sessions := auth.NewSessionRepository(db.Collection("sessions"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := products.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := sessions.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	var catalogCache cache.CatalogCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		catalogCache = cache.NewRedisCache(redisClient)
	} else {
		catalogCache = cache.NewMemoryCache(5 * time.Minute)
	}

	authService := auth.NewService(users, sessions)

	h := &routes.Handlers{
		Auth: authService,
		Products: &handlers.ProductHandler{
			Products: products,
			Catalog:  catalog.NewService(products, catalogCache),
			Cache:    catalogCache,
		},
		Users: &handlers.UserHandler{
			Users: users,
			Auth:  authService,
			SMS:   gateway.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom),
		},
		Cart: &handlers.CartHandler{
			Reconciler: cart.NewReconciler(products, users),
		},
		Orders: &handlers.OrderHandler{
			Checkout: checkout.NewService(users, products, orders),
			Orders:   orders,
		},
		Payment: &handlers.PaymentHandler{
			Gateway:        gateway.NewStripeGateway(cfg.StripeSecretKey),
			PublishableKey: cfg.StripeAPIKey,
		},
	}

	router := gin.Default()
	routes.RegisterRoutes(router, h)

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
