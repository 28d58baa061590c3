package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var Router *gin.Engine

func InitEngine() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.Default()

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "https://store.jpskating.in"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Admin-Email"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", Register)
			auth.POST("/login", Login)
		}

		products := api.Group("/products")
		{
			products.GET("/", GetProducts)
			products.GET("/:id", GetProductByID)
		}

		memberships := api.Group("/memberships")
		{
			memberships.GET("/", GetMemberships)
		}

		cart := api.Group("/cart")
		{
			cart.POST("/session", CreateCartSession)
			cart.GET("/:sessionId", GetCart)
			cart.POST("/:sessionId/items", AddToCart)
			cart.PUT("/:sessionId/items/:itemId", UpdateCartItem)
			cart.DELETE("/:sessionId/items/:itemId", RemoveFromCart)
			cart.DELETE("/:sessionId/clear", ClearCart)
		}

		api.POST("/checkout", Checkout)

		orders := api.Group("/orders")
		{
			orders.GET("/:orderNumber", GetOrderByNumber)
			orders.GET("/:orderNumber/receipt", GetOrderReceipt)
		}

		users := api.Group("/users")
		{
			users.GET("/:id/profile", GetUserProfile)
			users.PUT("/:id/profile", UpdateUserProfile)
			users.GET("/:id/orders", GetUserOrders)
			users.GET("/:id/memberships", GetUserMemberships)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/initiate", InitiatePayment)
			payments.POST("/verify", VerifyPayment)
			payments.POST("/simulate", SimulatePayment)
		}

		admin := api.Group("/admin")
		admin.Use(AdminMiddleware())
		{
			admin.GET("/products", AdminGetProducts)
			admin.POST("/products", AdminCreateProduct)
			admin.PUT("/products/:id", AdminUpdateProduct)
			admin.DELETE("/products/:id", AdminDeleteProduct)
			admin.PUT("/products/:id/stock", AdminUpdateStock)
			admin.GET("/products/:id/inventory-logs", AdminGetInventoryLogs)

			admin.GET("/orders", AdminGetOrders)
			admin.PUT("/orders/:id/status", AdminUpdateOrderStatus)
			admin.PUT("/orders/:id/payment-status", AdminUpdateOrderPaymentStatus)

			admin.GET("/memberships", AdminGetMemberships)
			admin.POST("/memberships", AdminCreateMembership)
			admin.PUT("/memberships/:id", AdminUpdateMembership)
			admin.DELETE("/memberships/:id", AdminDeleteMembership)

			admin.GET("/subscribers", AdminGetSubscribers)
			admin.POST("/users/:id/memberships/reconcile", AdminReconcileUserMemberships)

			admin.GET("/payment-options", AdminGetPaymentOptions)
			admin.PUT("/payment-options/:provider", AdminUpsertPaymentOption)
			admin.DELETE("/payment-options/:provider", AdminDeletePaymentOption)

			admin.GET("/reports/sales", AdminSalesReport)
			admin.GET("/reports/memberships", AdminMembershipReport)
		}
	}
}
