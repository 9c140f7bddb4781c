package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/config"
	dishHandler "restaurant-catalog/internal/domains/dish/handler"
	dishRepo "restaurant-catalog/internal/domains/dish/repository"
	dishService "restaurant-catalog/internal/domains/dish/service"
	imageHandler "restaurant-catalog/internal/domains/image/handler"
	imageJob "restaurant-catalog/internal/domains/image/job"
	imageService "restaurant-catalog/internal/domains/image/service"
	restaurantHandler "restaurant-catalog/internal/domains/restaurant/handler"
	restaurantRepo "restaurant-catalog/internal/domains/restaurant/repository"
	restaurantService "restaurant-catalog/internal/domains/restaurant/service"
	infraCache "restaurant-catalog/internal/infrastructure/cache"
	"restaurant-catalog/internal/infrastructure/database"
	"restaurant-catalog/internal/infrastructure/queue"
	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/pkg/cache"
	"restaurant-catalog/pkg/jwt"
	"restaurant-catalog/pkg/logger"
)

// Cache region names
const (
	RegionRestaurants        = "restaurants"
	RegionRestaurantsAll     = "restaurants_all"
	RegionRestaurantsCuisine = "restaurants_cuisine"
	RegionDishes             = "dishes"
	RegionRestaurantDishes   = "restaurant_dishes"
)

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Built once at start-up; repositories, services and handlers are stateless singletons.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	Storage     storage.Backend
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Checks backs GET /api/v1/health, keyed by dependency name
	Checks map[string]HealthCheck

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	RestaurantRepo restaurantRepo.RepositoryInterface
	DishRepo       dishRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	RestaurantService      restaurantService.ServiceInterface
	DishService            dishService.ServiceInterface
	RestaurantImageService imageService.ServiceInterface
	DishImageService       imageService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	RestaurantHandler      *restaurantHandler.RestaurantHandler
	DishHandler            *dishHandler.DishHandler
	RestaurantImageHandler *imageHandler.ImageHandler
	DishImageHandler       *imageHandler.ImageHandler
	AuditHandler           *imageHandler.AuditHandler

	// ========================================
	// JOBS (cmd/worker)
	// ========================================
	OrphanAuditHandler *imageJob.OrphanAuditHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph.
// Order: config, logger, database, redis, storage, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{Checks: map[string]HealthCheck{}}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("env", cfg.App.Environment).Str("version", cfg.App.Version).Msg("🔧 Initializing DI Container...")

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	c.Checks["database"] = db.HealthCheck

	if err := database.Migrate(ctx, db.Pool); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REDIS
	// ========================================
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// reads fall through to the database while Redis is down
		logger.Warn("⚠️  Redis connection failed (non-critical)", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)
	c.Checks["redis"] = c.Redis.HealthCheck

	c.AsynqClient = asynq.NewClient(queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB))

	// ========================================
	// STEP 4: OBJECT STORAGE
	// ========================================
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		// Upload retries this lazily
		logger.Warn("⚠️  Storage bucket not ready", map[string]interface{}{"bucket": cfg.Storage.Bucket, "error": err.Error()})
	}
	c.Storage = store
	c.Checks["storage"] = store.HealthCheck

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// ========================================
	// STEP 5: DOMAINS
	// ========================================
	c.WireDomains(
		restaurantRepo.NewPostgresRepository(db.Pool),
		dishRepo.NewPostgresRepository(db.Pool),
		store,
		c.AsynqClient,
	)

	log.Info().Str("storage", cfg.Storage.Driver).Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// WireDomains builds repositories, services, handlers and jobs on top of the given
// persistence, storage and queue. Used by NewContainer and by tests with in-memory fakes.
func (c *Container) WireDomains(
	restaurants restaurantRepo.RepositoryInterface,
	dishes dishRepo.RepositoryInterface,
	store storage.Storage,
	enqueuer queue.Enqueuer,
) {
	ttl := 15 * time.Minute
	if c.Config != nil && c.Config.Cache.TTL > 0 {
		ttl = c.Config.Cache.TTL
	}

	// ----------------------------------------
	// CACHE REGIONS
	// ----------------------------------------
	dishCaches := dishService.Caches{
		ByID:         cache.NewRegion(c.Cache, RegionDishes, ttl),
		ByRestaurant: cache.NewRegion(c.Cache, RegionRestaurantDishes, ttl),
	}
	restaurantCaches := restaurantService.Caches{
		ByID:      cache.NewRegion(c.Cache, RegionRestaurants, ttl),
		All:       cache.NewRegion(c.Cache, RegionRestaurantsAll, ttl),
		ByCuisine: cache.NewRegion(c.Cache, RegionRestaurantsCuisine, ttl),
		Dishes:    dishCaches.ByRestaurant,
		DishByID:  dishCaches.ByID,
	}

	// ----------------------------------------
	// REPOSITORIES
	// ----------------------------------------
	c.RestaurantRepo = restaurants
	c.DishRepo = dishes

	// ----------------------------------------
	// SERVICES
	// ----------------------------------------
	c.RestaurantService = restaurantService.NewRestaurantService(restaurants, restaurantCaches, store)
	c.DishService = dishService.NewDishService(dishes, c.RestaurantService, dishCaches, store)
	c.RestaurantImageService = imageService.NewImageService(
		"restaurant",
		restaurantService.NewImageOwnerStore(restaurants, restaurantCaches),
		store,
	)
	c.DishImageService = imageService.NewImageService(
		"dish",
		dishService.NewImageOwnerStore(dishes, dishCaches),
		store,
	)

	// ----------------------------------------
	// HANDLERS
	// ----------------------------------------
	c.RestaurantHandler = restaurantHandler.NewRestaurantHandler(c.RestaurantService, c.DishService)
	c.DishHandler = dishHandler.NewDishHandler(c.DishService)
	c.RestaurantImageHandler = imageHandler.NewImageHandler(c.RestaurantImageService, c.RestaurantHandler.PresentImageOwner)
	c.DishImageHandler = imageHandler.NewImageHandler(c.DishImageService, dishHandler.PresentImageOwner)
	if enqueuer != nil {
		c.AuditHandler = imageHandler.NewAuditHandler(enqueuer)
	}

	// ----------------------------------------
	// JOBS
	// ----------------------------------------
	c.OrphanAuditHandler = imageJob.NewOrphanAuditHandler(store,
		imageJob.Scope{Prefix: storage.PrefixDishes, References: dishes},
		imageJob.Scope{Prefix: storage.PrefixRestaurants, References: restaurants},
	)
}

// Cleanup releases connections; safe on a partially built container
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
