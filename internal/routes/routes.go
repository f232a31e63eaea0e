package routes

import (
	"github.com/gin-gonic/gin"

	"farmhub/internal/auth"
	"farmhub/internal/handlers"
)

// Handlers bundles everything RegisterRoutes wires up.
type Handlers struct {
	Auth     *auth.Service
	Products *handlers.ProductHandler
	Users    *handlers.UserHandler
	Cart     *handlers.CartHandler
	Orders   *handlers.OrderHandler
	Payment  *handlers.PaymentHandler
}

func RegisterRoutes(router *gin.Engine, h *Handlers) {
	required := auth.Middleware(h.Auth, true)
	optional := auth.Middleware(h.Auth, false)

	v1 := router.Group("/v1")
	{
		// Catalog
		v1.GET("/products", h.Products.GetAllProducts)
		v1.GET("/products/top", h.Products.TopProducts)
		v1.GET("/products/search/:term", h.Products.ProductSearch)
		v1.GET("/products/:productId", optional, h.Products.DisplayProduct)
		v1.GET("/products/:productId/images/:index", h.Products.GetImage)
		v1.GET("/categories/:category/products", h.Products.ProductList)

		v1.POST("/products", required, h.Products.CreateProduct)
		v1.PUT("/products/:productId", required, h.Products.UpdateProduct)
		v1.DELETE("/products/:productId", required, h.Products.DeleteProduct)

		// Reviews
		v1.POST("/products/:productId/reviews", required, h.Products.AddReview)
		v1.PUT("/products/:productId/reviews", required, h.Products.UpdateReview)
		v1.DELETE("/products/:productId/reviews", required, h.Products.DeleteReview)

		// Authentication
		v1.POST("/login", h.Users.Login)
		v1.POST("/logout", required, h.Users.Logout)
		v1.GET("/me", required, h.Users.CurrentUserDetails)

		// Users
		v1.POST("/users", h.Users.CreateUser)
		v1.GET("/users", required, h.Users.UserList)
		v1.GET("/users/:userId", required, h.Users.DisplayUser)
		v1.PUT("/users/:userId", required, h.Users.UpdateUser)
		v1.DELETE("/users/:userId", required, h.Users.DeleteUser)
		v1.GET("/users/:userId/avatar", h.Users.GetAvatar)

		// Addresses
		v1.POST("/users/:userId/addresses", required, h.Users.AddAddress)
		v1.PUT("/users/:userId/addresses/:addressId", required, h.Users.UpdateAddress)
		v1.DELETE("/users/:userId/addresses/:addressId", required, h.Users.DeleteAddress)

		// Password management
		v1.PUT("/users/:userId/password", required, h.Users.ResetPassword)
		v1.POST("/password/forgot", h.Users.ForgotPassword)
		v1.POST("/password/verify", h.Users.CheckOtp)
		v1.PUT("/password", h.Users.ChangePassword)

		// Cart
		v1.POST("/users/:userId/cart", required, h.Cart.AddToCart)
		v1.PUT("/users/:userId/cart/:productId", required, h.Cart.UpdateInCart)
		v1.DELETE("/users/:userId/cart/:productId", required, h.Cart.RemoveFromCart)

		// Orders
		v1.POST("/users/:userId/orders", required, h.Orders.CreateOrder)
		v1.GET("/users/:userId/orders", required, h.Orders.UserOrders)
		v1.GET("/orders", required, h.Orders.OrderList)
		v1.GET("/orders/:orderId", required, h.Orders.OrderInfo)
		v1.PUT("/orders/:orderId", required, h.Orders.UpdateOrder)

		// Payment
		v1.POST("/payment/process", required, h.Payment.ProcessPayment)
		v1.GET("/payment/key", h.Payment.SendStripeApiKey)
	}
}
