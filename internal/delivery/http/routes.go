package http

import (
	"github.com/gin-gonic/gin"

	"github.com/roomly/backend/config"
	"github.com/roomly/backend/internal/usecase"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, auth *usecase.AuthService) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/recommendations", handler.Recommendations)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.POST("/compare", handler.CompareProducts)
		}

		v1.POST("/search/smart", handler.SmartSearch)

		rooms := v1.Group("/rooms")
		{
			rooms.POST("/analyze", handler.AnalyzeRoom)
			rooms.GET("", handler.ListRooms)
			rooms.POST("", handler.CreateRoom)
			rooms.GET("/:id", handler.GetRoom)
			rooms.PUT("/:id", handler.UpdateRoom)
			rooms.DELETE("/:id", handler.DeleteRoom)
		}

		activity := v1.Group("/activity")
		{
			activity.POST("/searches", handler.RecordSearch)
			activity.POST("/views", handler.RecordView)
			activity.POST("/clicks", handler.RecordClick)
			activity.GET("/recently-viewed", handler.RecentlyViewed)
			activity.GET("/searches", handler.RecentSearches)
			activity.GET("/summary", handler.ActivitySummary)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.POST("/items", handler.AddCartItem)
			cart.PUT("/items/:productId", handler.UpdateCartItem)
			cart.DELETE("/items/:productId", handler.RemoveCartItem)
		}

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", handler.Register)
			authRoutes.POST("/login", handler.Login)
			authRoutes.GET("/me", AuthMiddleware(auth), handler.Me)
		}

		// Discount and catalog management require a logged-in user
		protected := v1.Group("", AuthMiddleware(auth))
		{
			discounts := protected.Group("/discounts")
			{
				discounts.GET("", handler.ListDiscounts)
				discounts.PUT("/:productId", handler.SetDiscount)
				discounts.DELETE("/:productId", handler.RemoveDiscount)
			}

			admin := protected.Group("/admin/products")
			{
				admin.POST("", handler.AddCustomProduct)
				admin.DELETE("/:id", handler.RemoveCustomProduct)
			}
		}
	}

	return router
}
