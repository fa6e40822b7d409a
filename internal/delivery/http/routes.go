package http

import (
	"github.com/gin-gonic/gin"

	"github.com/furnifind/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, metrics *Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(LoggerMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	uploadLimiter := NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/products", handler.ListProducts)
			catalog.GET("/products/:productId", handler.GetProduct)
			catalog.GET("/featured", handler.FeaturedProducts)
			catalog.GET("/brands", handler.ListBrands)
			catalog.GET("/brands/:name", handler.GetBrand)
		}

		v1.POST("/sessions", handler.CreateSession)

		session := v1.Group("/sessions/:id")
		{
			session.GET("", handler.GetSession)
			session.DELETE("", handler.DeleteSession)
			session.POST("/uploads", RateLimitMiddleware(uploadLimiter), handler.UploadImage)
			session.GET("/analysis/events", handler.AnalysisEvents)
			session.GET("/products", handler.SessionProducts)

			filters := session.Group("/filters")
			{
				filters.PUT("/category", handler.SetCategory)
				filters.PUT("/stores", handler.SetStores)
				filters.POST("/stores/toggle", handler.ToggleStore)
				filters.PUT("/price", handler.SetPriceRange)
				filters.DELETE("", handler.ClearFilters)
			}
		}

		v1.POST("/contact", handler.SubmitContact)
	}

	return router
}
