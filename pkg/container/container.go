package container

import (
	"context"
	"fmt"
	"time"

	"inventory-backend/internal/config"
	infraCache "inventory-backend/internal/infrastructure/cache"
	"inventory-backend/internal/infrastructure/database"
	"inventory-backend/pkg/cache"
	"inventory-backend/pkg/logger"

	"inventory-backend/internal/domains/category"
	categoryHandler "inventory-backend/internal/domains/category/handler"
	categoryRepo "inventory-backend/internal/domains/category/repository"
	categoryService "inventory-backend/internal/domains/category/service"

	"inventory-backend/internal/domains/product"
	productHandler "inventory-backend/internal/domains/product/handler"
	productRepo "inventory-backend/internal/domains/product/repository"
	productService "inventory-backend/internal/domains/product/service"
)

const cachePrefix = "inventory:"

// Container holds the application dependency graph.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infraCache.RedisClient // nil when Redis is disabled or unreachable
	Cache  cache.Cache             // never nil, falls back to a no-op cache

	// ========================================
	// REPOSITORIES
	// ========================================
	CategoryRepo category.Repository
	ProductRepo  product.Repository

	// ========================================
	// SERVICES
	// ========================================
	CategoryService category.Service
	ProductService  product.Service

	// ========================================
	// HANDLERS
	// ========================================
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
}

// NewContainer loads the configuration, connects to PostgreSQL (and Redis
// when enabled) and wires every domain.
func NewContainer(ctx context.Context) (*Container, error) {
	logger.Info("Initializing DI container...", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.HealthCheck(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 4-6: DOMAINS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// initCache connects to Redis when enabled. Any failure degrades to the
// no-op cache: the API keeps serving from PostgreSQL.
func (c *Container) initCache(ctx context.Context) {
	c.Cache = infraCache.NopCache{}

	if !c.Config.Redis.Enabled {
		logger.Info("Redis disabled, caching off", nil)
		return
	}

	client := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
		_ = client.Close()
		return
	}

	c.Redis = client
	c.Cache = infraCache.NewRedisCache(client.Client, cachePrefix)
}

func (c *Container) initRepositories() {
	c.CategoryRepo = categoryRepo.NewPostgresRepository(c.DB.Pool)
	c.ProductRepo = productRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
	// Product writes check category ids against the category repository.
	c.ProductService = productService.NewProductService(c.ProductRepo, c.CategoryRepo)
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
}

// Cleanup releases the database pool and the Redis connection.
// Called during graceful shutdown.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources...", nil)

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	logger.Info("Container cleanup completed", nil)
}
