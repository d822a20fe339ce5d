package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-backend/internal/shared/middleware"
	"inventory-backend/internal/shared/response"
	"inventory-backend/pkg/container"
	"inventory-backend/pkg/logger"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// ClientIP keys the rate limiter; only listed proxies may set X-Forwarded-For.
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxies, trusting none", err)
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.SecurityHeaders(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowOrigins),
	)

	router.GET("/", rootHandler(c))
	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	// The limiter needs a shared counter; without Redis it stays off.
	if c.Config.RateLimit.Enabled && c.Redis != nil {
		api.Use(middleware.APIRateLimit(c.Cache, c.Config.RateLimit.MaxRequests, c.Config.RateLimit.Window))
	}
	{
		api.GET("/docs", docsHandler)

		setupProductRoutes(api, c)
		setupCategoryRoutes(api, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, fmt.Sprintf("Route %s %s not found", ctx.Request.Method, ctx.Request.URL.Path))
	})

	return router
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(api *gin.RouterGroup, c *container.Container) {
	products := api.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/search", c.ProductHandler.Search)
		products.GET("/stats", c.ProductHandler.Stats)
		products.GET("/low-stock", c.ProductHandler.LowStock)
		products.GET("/export", c.ProductHandler.Export)
		products.POST("/bulk-delete", c.ProductHandler.BulkDelete)
		products.GET("/:id", c.ProductHandler.GetByID)
		products.POST("", c.ProductHandler.Create)
		products.PUT("/:id", c.ProductHandler.Update)
		products.DELETE("/:id", c.ProductHandler.Delete)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	categories := api.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/with-count", c.CategoryHandler.ListWithProductCount)
		categories.GET("/search", c.CategoryHandler.Search)
		categories.GET("/:id", c.CategoryHandler.GetByID)
		categories.POST("", c.CategoryHandler.Create)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

func rootHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Inventory Management API", gin.H{
			"name":        appCtx.Config.App.Name,
			"version":     appCtx.Config.App.Version,
			"environment": appCtx.Config.App.Environment,
			"docs":        "/api/docs",
			"health":      "/health",
		})
	}
}

var endpoints = []gin.H{
	{"method": "GET", "path": "/api/products", "description": "List products (search, categoryIds, page, limit)"},
	{"method": "GET", "path": "/api/products/search", "description": "Search product names (q, limit)"},
	{"method": "GET", "path": "/api/products/stats", "description": "Inventory statistics"},
	{"method": "GET", "path": "/api/products/low-stock", "description": "Products with quantity below 10 (limit)"},
	{"method": "GET", "path": "/api/products/export", "description": "Download matching products as xlsx"},
	{"method": "GET", "path": "/api/products/:id", "description": "Get a product"},
	{"method": "POST", "path": "/api/products", "description": "Create a product"},
	{"method": "PUT", "path": "/api/products/:id", "description": "Replace a product and its categories"},
	{"method": "DELETE", "path": "/api/products/:id", "description": "Delete a product"},
	{"method": "POST", "path": "/api/products/bulk-delete", "description": "Delete up to 100 products"},
	{"method": "GET", "path": "/api/categories", "description": "List categories"},
	{"method": "GET", "path": "/api/categories/with-count", "description": "List categories with product counts"},
	{"method": "GET", "path": "/api/categories/search", "description": "Search category names (q, limit)"},
	{"method": "GET", "path": "/api/categories/:id", "description": "Get a category"},
	{"method": "POST", "path": "/api/categories", "description": "Create a category"},
	{"method": "PUT", "path": "/api/categories/:id", "description": "Update a category"},
	{"method": "DELETE", "path": "/api/categories/:id", "description": "Delete an unused category"},
	{"method": "GET", "path": "/health", "description": "Database and cache status"},
}

func docsHandler(c *gin.Context) {
	response.Success(c, http.StatusOK, "API documentation", gin.H{
		"endpoints": endpoints,
	})
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		// Check redis
		redisStatus := "disabled"
		if appCtx.Redis != nil {
			redisStatus = "ok"
			if err := appCtx.Redis.HealthCheck(c.Request.Context()); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
