package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajidhasan/ecomart-golang/internal/handlers"
	"github.com/sajidhasan/ecomart-golang/internal/middleware"
)

// CORSMiddleware lets browser frontends talk to the API and send the
// auth cookie along.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter wires every endpoint under /api, mirroring the route
// tables of the original frontend contract.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	// Serve uploaded images as static files.
	router.Static("/images", h.Config.UploadDir)

	// The two middlewares used below.
	authRequired := middleware.Authenticate(h.DB, h.Auth)
	adminRequired := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/users/login", h.Login)
		api.POST("/users/register", h.Register)
		api.POST("/users/logout", h.Logout)
		api.POST("/users/verify-token", h.VerifyToken)

		// --- User Routes ---
		api.GET("/users", authRequired, adminRequired, h.GetAllUsers)
		api.POST("/users/create", h.CreateUser)
		api.GET("/users/:userId", h.GetUserByID)
		api.PUT("/users/:userId", h.UpdateUser)
		api.DELETE("/users/:userId", h.DeleteUser)

		// --- Category Routes ---
		api.GET("/categories", h.GetAllCategories)
		api.POST("/categories", authRequired, adminRequired, h.CreateCategory)
		api.GET("/categories/:categoryId", h.GetCategoryByID)
		api.PUT("/categories/:categoryId", authRequired, adminRequired, h.UpdateCategory)
		api.DELETE("/categories/:categoryId", authRequired, adminRequired, h.DeleteCategory)

		// --- Product Routes ---
		api.GET("/products", h.GetAllProducts)
		api.POST("/products", authRequired, adminRequired, h.CreateProduct)
		api.GET("/products/:productId", h.GetProductByID)
		api.PUT("/products/:productId", authRequired, adminRequired, h.UpdateProduct)
		api.DELETE("/products/:productId", authRequired, adminRequired, h.DeleteProduct)

		// --- Review Routes ---
		api.GET("/reviews", h.GetAllReviews)
		api.POST("/reviews", authRequired, h.CreateReview)
		api.GET("/reviews/:reviewId", h.GetReviewByID)
		api.PUT("/reviews/:reviewId", authRequired, h.UpdateReview)
		api.DELETE("/reviews/:reviewId", authRequired, h.DeleteReview)

		// --- Order Routes ---
		api.GET("/orders", h.GetAllOrders)
		api.POST("/orders", authRequired, h.CreateOrder)
		api.GET("/orders/:orderId", h.GetOrderByID)
		api.PUT("/orders/:orderId", authRequired, adminRequired, h.UpdateOrder)
		api.DELETE("/orders/:orderId", authRequired, adminRequired, h.DeleteOrder)

		// --- Payment Routes (Admin-Only) ---
		payments := api.Group("/payments", authRequired, adminRequired)
		{
			payments.GET("", h.GetAllPayments)
			payments.POST("", h.CreatePayment)
			payments.GET("/:paymentId", h.GetPaymentByID)
			payments.PUT("/:paymentId", h.UpdatePayment)
			payments.DELETE("/:paymentId", h.DeletePayment)
		}

		// --- Cart Routes (Login Required) ---
		cart := api.Group("/cart", authRequired)
		{
			cart.GET("", h.GetCart)
			cart.POST("/items", h.AddToCart)
			cart.PUT("/items/:productId", h.UpdateCartItem)
			cart.DELETE("/items/:productId", h.DeleteCartItem)
		}

		// --- Upload Route (Login Required) ---
		api.POST("/upload", authRequired, h.UploadImage)
	}

	return router
}
